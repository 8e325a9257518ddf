package http

import "net/http"

// HealthHandler reports process liveness. It deliberately skips the
// database so load balancers don't recycle the instance during a store
// outage.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Service: "library-api",
	})
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
