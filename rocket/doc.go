// Package rocket is a client library for GNU Rocket compatible sync
// trackers. A live Client connects to a tracker, mirrors the edited
// keyframe tracks and reports row/pause/save events; a Player evaluates
// a frozen track set for release builds with no tracker attached.
package rocket
