package names

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Revision labels are "adjective-noun" pairs. They only need to be distinct
// between consecutive revisions of one container app, so a small vocabulary
// is enough; Container Apps rejects a revision suffix that is already in use.

var adjectives = []string{
	"amber", "brave", "brisk", "calm", "clever", "cobalt", "cosmic", "crisp",
	"dapper", "eager", "early", "fancy", "fleet", "frosty", "gentle", "golden",
	"happy", "hardy", "humble", "icy", "jolly", "keen", "lively", "lucid",
	"lunar", "mellow", "misty", "modest", "nimble", "noble", "polar", "proud",
	"quick", "quiet", "rapid", "rustic", "serene", "sharp", "silent", "silver",
	"sleek", "snowy", "solar", "spry", "steady", "stellar", "sunny", "swift",
	"tidy", "vivid", "wild", "witty", "zesty",
}

var nouns = []string{
	"anchor", "badger", "beacon", "breeze", "canyon", "cedar", "comet", "coral",
	"crane", "delta", "dolphin", "ember", "falcon", "fjord", "forest", "galaxy",
	"glacier", "harbor", "heron", "island", "jaguar", "kestrel", "lagoon", "lantern",
	"maple", "meadow", "meteor", "nebula", "orbit", "otter", "panda", "pebble",
	"pine", "pulsar", "quasar", "raven", "reef", "ridge", "river", "sparrow",
	"summit", "tundra", "valley", "voyager", "walrus", "willow", "yak", "zephyr",
}

// Generate returns a random "adjective-noun" label such as "swift-otter",
// used as a Container Apps revision suffix.
func Generate() string {
	adjective := adjectives[randomIndex(len(adjectives))]
	noun := nouns[randomIndex(len(nouns))]
	return fmt.Sprintf("%s-%s", adjective, noun)
}

// randomIndex returns a uniform index in [0, max) using crypto/rand.
func randomIndex(max int) int {
	if max <= 0 {
		return 0
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// Fallback to the first entry if crypto/rand fails
		return 0
	}

	return int(n.Int64())
}
