// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Gemini assistant with keyword fallback, sqlite guestbook
// 0.2.0 - Meteor showers, altitude readout for the focused star
// 0.1.0 - Initial release: zodiac picker, constellation sky, drifting starfield
