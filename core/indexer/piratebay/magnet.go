package piratebay

import (
	"net/url"
	"strings"
)

// trackers are appended to every magnet link, in this order
var trackers = [...]string{
	"udp://tracker.coppersurfer.tk:6969/announce",
	"udp://tracker.openbittorrent.com:6969/announce",
	"udp://9.rarbg.to:2710/announce",
	"udp://9.rarbg.to:2780/announce",
	"udp://9.rarbg.to:2730/announce",
	"udp://tracker.opentrackr.org:1337",
	"http://p4p.arenabg.com:1337/announce",
	"udp://tracker.torrent.eu.org:451/announce",
	"udp://tracker.tiny-vps.com:6969/announce",
	"udp://open.stealth.si:80/announce",
}

// magnetURI builds a magnet link from an info hash and display name since
// the API never returns one
func magnetURI(name, infoHash string) string {
	var b strings.Builder
	b.WriteString("magnet:?xt=")
	b.WriteString(url.QueryEscape("urn:bith:" + infoHash))
	b.WriteString("&dn=")
	b.WriteString(url.QueryEscape(strings.TrimSpace(name)))
	for _, tracker := range trackers {
		b.WriteString("&tr=")
		b.WriteString(url.QueryEscape(tracker))
	}
	return b.String()
}
