package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container collects the middlewares for the next group of operations.
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

func (mc *Container) Add(middleware ...func(ctx huma.Context, next func(huma.Context))) {
	for _, m := range middleware {
		if m != nil {
			mc.Middlewares = append(mc.Middlewares, m)
		}
	}
}

// GetAllAndClear hands the collected middlewares over and starts a new group.
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
