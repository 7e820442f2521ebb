package middlewares

const (
	CtxRequestID = "request_id"
	CtxClaims    = "session.claims"
)
