// Package agendatest provides an in-memory agenda backend for tests.
//
// The server speaks the same REST surface as the real backend under an
// /api/ prefix:
//
//   - POST /api/auth/register, POST /api/auth/login: return {"token": ...}
//   - GET, POST /api/events and GET, PUT, DELETE /api/events/{id}
//   - GET, POST /api/contacts and GET, PUT, DELETE /api/contacts/{id}
//
// Event and contact routes require "Authorization: Bearer <token>" with a
// token minted by the server. PUT merges the fields present in the body
// into the stored record, so partial updates behave like the real backend.
// Failures are answered with {"error": code, "message": text}.
//
// # Basic Usage
//
//	srv := agendatest.NewServer()
//	defer srv.Close()
//
//	token := srv.MintToken("alice")
//	client, _ := backend.NewClient(srv.BaseURL(), transport, 0, log)
//
// Every request is recorded and can be inspected with Requests. FailNext
// makes the next matching call fail with a chosen status and message.
package agendatest
