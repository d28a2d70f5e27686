package bridge

import (
	"strings"

	"mcbridge/internal/types"
)

// normalizeChannelName unifies a configured channel name: one leading
// "#" is stripped and the result is lower-cased.
func normalizeChannelName(name string) string {
	name = strings.TrimPrefix(name, "#")
	return strings.ToLower(name)
}

// resolveChannels intersects the guild's channel list with the
// configured name set. Matching is by lower-cased name; the result
// order follows the guild list. An empty result means the bridge relays
// nothing outward, which is legitimate: the guild may simply have no
// matching channels yet.
func resolveChannels(available []types.Channel, configured map[string]struct{}) []types.Channel {
	var resolved []types.Channel
	for _, channel := range available {
		if _, ok := configured[strings.ToLower(channel.Name)]; ok {
			resolved = append(resolved, channel)
		}
	}
	return resolved
}
