package rcontext

import (
	"context"

	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/sirupsen/logrus"
)

func Initial() RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     logrus.WithFields(logrus.Fields{"nocontext": true}),
		Config:  *config.Get(),
	}.populate()
}

type RequestContext struct {
	context.Context

	// These are also stored on the context object itself
	Log    *logrus.Entry           // mc.logger
	Config config.MainClientConfig // mc.config
}

func (c RequestContext) populate() RequestContext {
	c.Context = context.WithValue(c.Context, "mc.logger", c.Log)
	c.Context = context.WithValue(c.Context, "mc.config", c.Config)
	return c
}

func (c RequestContext) ReplaceLogger(log *logrus.Entry) RequestContext {
	ctx := context.WithValue(c.Context, "mc.logger", log)
	return RequestContext{
		Context: ctx,
		Log:     log,
		Config:  c.Config,
	}
}

func (c RequestContext) LogWithFields(fields logrus.Fields) RequestContext {
	return c.ReplaceLogger(c.Log.WithFields(fields))
}
