package pprof

import (
	"net/http"
	_ "net/http/pprof"
	"runtime"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Load serves the runtime profiles on addr in the background. An empty addr disables it.
func Load(addr string) bool {
	if addr == "" {
		return false
	}
	runtime.SetMutexProfileFraction(1)
	runtime.SetBlockProfileRate(1)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			hlog.Errorf("pprof listener on %s stopped: %v", addr, err)
		}
	}()
	hlog.Infof("pprof listening on %s", addr)
	return true
}
