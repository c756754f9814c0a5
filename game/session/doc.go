// Package session provides session management for Pipeworks.
//
// A session is one open map: a game engine built from a map configuration
// and its tile catalog, plus the camera and controls the front ends keep for
// it. The manager holds at most one session per map configuration, so
// switching maps and coming back resumes where the player left off.
//
// Session Identifiers:
//
// Sessions are identified by random UUIDs and looked up case-insensitively.
//
// Concurrency:
//
// The manager is safe for concurrent use. A session's engine is not: it
// belongs to the goroutine running the frame loop.
//
// Usage:
//
//	sessions := session.NewManager(configManager)
//
//	// Open the default map
//	sess, err := sessions.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Cycle to the next map config
//	sess, err = sessions.Next(sess)
package session
