package util

import (
	"hash/fnv"
	"net/url"
	"strconv"
	"strings"
)

// JobID derives the cross-source fingerprint for a listing: the source
// prefix plus the site-native id when the site exposes one, else a base36
// hash of the canonical URL. Stable across repeated scrapes.
func JobID(prefix, nativeID, rawURL string) string {
	if nativeID != "" {
		return prefix + "-" + nativeID
	}
	h := fnv.New32a()
	h.Write([]byte(canonicalURL(rawURL)))
	return prefix + "-" + strconv.FormatUint(uint64(h.Sum32()), 36)
}

func canonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	return u.String()
}
