// Command healthcheck probes a running server's /healthz endpoint and exits
// non-zero when it is not healthy. Used as the container health check.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"SignalDash/internal/handler/api"
	xhttp "SignalDash/pkg/http"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8080", "server base URL")
	timeout := flag.Duration("timeout", 3*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var st api.HealthStatus
	code, err := xhttp.NewClient(xhttp.WithTimeout(*timeout)).GetEnvelope(ctx, *addr+"/healthz", &st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unhealthy (%d): %v\n", code, err)
		os.Exit(1)
	}
	fmt.Printf("%s storage=%s\n", st.Status, st.Storage)
}
