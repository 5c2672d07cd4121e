// Package auth implements the client-side authentication core for the
// Appquilar marketplace API: unverified bearer-token decoding, an immutable
// session value object, durable token storage, and a session manager that
// drives login, logout, registration, and password flows against injected
// repositories.
//
// Sessions:
//   - A Session is a derived view of the persisted raw token. It is rebuilt
//     from the token on every read and never persisted itself. Decoding is
//     total: malformed tokens yield a safe fallback session, never an error.
//   - Token payloads are decoded without signature verification. This is a
//     UI convenience only; authorization is always enforced by the backend.
//
// Session manager:
//   - SessionManager is the tab-lifetime state container. It restores a
//     persisted session at mount, fetches the owning user, and republishes
//     state to registered listeners so guards can re-evaluate.
//
// Guards:
//   - Guards are pure decision functions over the manager's published state.
//     They return Allow, Redirect, or Fallback; the rendering or routing
//     layer merely executes the decision. While the manager is loading every
//     guard decides Fallback so no redirect fires before restoration ends.
package auth
