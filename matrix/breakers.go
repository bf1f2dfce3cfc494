package matrix

import (
	"sync"

	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/rubyist/circuitbreaker"
)

var breakers = &sync.Map{}

func getBreaker(origin string) *circuit.Breaker {
	var cb *circuit.Breaker
	cbRaw, hasCb := breakers.Load(origin)
	if !hasCb {
		backoffAt := int64(10) // default for origins without a config entry
		if hs := config.GetHomeserver(origin); hs != nil && hs.BackoffAt > 0 {
			backoffAt = int64(hs.BackoffAt)
		}
		cb = circuit.NewConsecutiveBreaker(backoffAt)
		breakers.Store(origin, cb)
	} else {
		cb = cbRaw.(*circuit.Breaker)
	}
	return cb
}
