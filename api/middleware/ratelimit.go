package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/api/weberr"
	"github.com/jbalanon/anihan-market/rate"
)

func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, err.Error(), http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
