package ping

import (
	"log"
	"net/http"

	"camdeck/v0/internal/config"
	"github.com/gorilla/mux"
)

func CreateRoute(r *mux.Router) {
	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		if config.Verbose {
			log.Printf("Received %s request for host %s from IP address %s and X-FORWARDED-FOR %s",
				r.Method, r.Host, r.RemoteAddr, r.Header.Get("X-FORWARDED-FOR"))
		}
		w.Write([]byte("pong"))
	}).Methods("GET")
}
