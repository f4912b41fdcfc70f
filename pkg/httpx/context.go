package httpx

type ctxKey string

// CtxKeyIdentityID carries the authenticated identity id set by the authn
// middleware.
const CtxKeyIdentityID ctxKey = "identity_id"
