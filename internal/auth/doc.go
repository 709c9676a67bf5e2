// Package auth checks the single admin credential pair.
//
// The password is held as an Argon2id hash. A plaintext password from the
// configuration is hashed once when the Gate is created and never kept.
//
// Verify always runs the full hash comparison, also for a wrong username, so
// the response time does not reveal which of the two was wrong.
//
// Example usage:
//
//	gate, err := auth.NewGate(cfg.Admin)
//	if err != nil {
//		return err
//	}
//
//	if gate.Verify(username, password) {
//		// log the session in
//	}
package auth
