// ABOUTME: Matching of probed media and trees against catalog entries
// ABOUTME: First full match in os insertion order wins and fills the candidate

package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/media"
	"github.com/nainya/osinfodb/pkg/tree"
)

// Identification kinds used in logs and metrics
const (
	kindMedia = "media"
	kindTree  = "tree"
)

// Keys compared by pattern, in order
var mediaFields = []string{
	media.ParamVolumeID,
	media.ParamApplicationID,
	media.ParamSystemID,
	media.ParamPublisherID,
}

var treeFields = []string{
	tree.ParamTreeinfoFamily,
	tree.ParamTreeinfoVariant,
	tree.ParamTreeinfoVersion,
	tree.ParamTreeinfoArch,
}

// IdentifyMedia looks for a catalog media entry matching candidate. On a
// match it rebinds candidate to the entry's id, copies the entry's boot and
// install metadata, computes languages and sets the os reference. On a miss
// candidate is left untouched.
func (db *Db) IdentifyMedia(candidate *media.Media) bool {
	start := time.Now()
	os, entry := db.matchMedia(candidate)
	db.record(kindMedia, candidate.ID(), os, time.Since(start))
	if entry == nil {
		return false
	}
	db.fillMedia(candidate, entry)
	return true
}

// GuessOsFromMedia returns the os owning the first matching media entry,
// without modifying candidate
func (db *Db) GuessOsFromMedia(candidate *media.Media) (*Os, *media.Media) {
	start := time.Now()
	os, entry := db.matchMedia(candidate)
	db.record(kindMedia, candidate.ID(), os, time.Since(start))
	return os, entry
}

// GuessOsFromTree returns the os owning the first matching tree entry,
// without modifying candidate
func (db *Db) GuessOsFromTree(candidate *tree.Tree) (*Os, *tree.Tree) {
	start := time.Now()
	os, entry := db.matchTree(candidate)
	db.record(kindTree, candidate.ID(), os, time.Since(start))
	return os, entry
}

// IdentifyTree is the tree counterpart of IdentifyMedia. The candidate keeps
// its url.
func (db *Db) IdentifyTree(candidate *tree.Tree) bool {
	start := time.Now()
	os, entry := db.matchTree(candidate)
	db.record(kindTree, candidate.ID(), os, time.Since(start))
	if entry == nil {
		return false
	}

	url, hasURL := candidate.GetParam(tree.ParamURL)
	candidate.Entity = candidate.WithID(entry.ID())
	copyParams(candidate.Entity, entry.Entity,
		tree.ParamArchitecture,
		tree.ParamURL,
		tree.ParamKernel,
		tree.ParamInitrd,
		tree.ParamBootISO,
	)
	if hasURL {
		candidate.SetParam(tree.ParamURL, url)
	}
	candidate.SetOsID(entry.OsID())
	return true
}

func (db *Db) matchMedia(candidate *media.Media) (*Os, *media.Media) {
	if _, ok := candidate.GetParam(media.ParamVolumeID); !ok {
		return nil, nil
	}
	for _, os := range db.oses.Elements() {
		for _, entry := range sortMediaEntries(os.media.Elements(), candidate.VolumeID()) {
			if db.mediaMatches(entry, candidate) {
				return os, entry
			}
		}
	}
	return nil, nil
}

func (db *Db) mediaMatches(entry, candidate *media.Media) bool {
	if !db.fieldsMatch(entry, candidate, mediaFields) {
		return false
	}
	want := entry.VolumeSize()
	if want <= 0 {
		return true
	}
	return want == candidate.VolumeSize()
}

func (db *Db) matchTree(candidate *tree.Tree) (*Os, *tree.Tree) {
	for _, os := range db.oses.Elements() {
		for _, entry := range os.trees.Elements() {
			if db.fieldsMatch(entry, candidate, treeFields) {
				return os, entry
			}
		}
	}
	return nil, nil
}

func (db *Db) fieldsMatch(entry, candidate entity.Item, keys []string) bool {
	for _, key := range keys {
		pattern, hasPattern := entry.GetParam(key)
		value, hasValue := candidate.GetParam(key)
		if !db.regexes.match(pattern, hasPattern, value, hasValue) {
			return false
		}
	}
	return true
}

// sortMediaEntries puts entries whose volume id pattern occurs literally in
// volumeID first, keeping catalog order within each group
func sortMediaEntries(entries []*media.Media, volumeID string) []*media.Media {
	sorted := make([]*media.Media, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return literalHit(sorted[i], volumeID) && !literalHit(sorted[j], volumeID)
	})
	return sorted
}

func literalHit(entry *media.Media, volumeID string) bool {
	pattern, ok := entry.GetParam(media.ParamVolumeID)
	return ok && strings.Contains(volumeID, pattern)
}

func (db *Db) fillMedia(candidate, entry *media.Media) {
	candidate.Entity = candidate.WithID(entry.ID())
	copyParams(candidate.Entity, entry.Entity,
		media.ParamArchitecture,
		media.ParamURL,
		media.ParamKernel,
		media.ParamInitrd,
		media.ParamInstaller,
		media.ParamLive,
		media.ParamInstallerReboots,
		media.ParamEjectAfterInstall,
		media.ParamVariant,
	)

	if langs := db.detectLanguages(candidate, entry); len(langs) > 0 {
		candidate.SetLanguages(langs)
	} else if declared := entry.Languages(); len(declared) > 0 {
		candidate.SetLanguages(declared)
	}
	candidate.SetOsID(entry.OsID())
}

// detectLanguages extracts a language token from the candidate's volume id
// with the entry's language pattern and translates it through the entry's
// datamap. Tokens missing from the datamap pass through.
func (db *Db) detectLanguages(candidate, entry *media.Media) []string {
	pattern := entry.LanguageRegex()
	if pattern == "" || candidate.VolumeID() == "" {
		return nil
	}
	token, ok := db.regexes.submatch(pattern, candidate.VolumeID())
	if !ok {
		return nil
	}
	if mapID := entry.LanguageMap(); mapID != "" {
		if dm := db.GetDatamap(mapID); dm != nil {
			token = dm.Lookup(token)
		}
	}
	return []string{token}
}

// copyParams replaces each key present on src in dst
func copyParams(dst, src *entity.Entity, keys ...string) {
	for _, key := range keys {
		values := src.GetParamList(key)
		if len(values) == 0 {
			continue
		}
		dst.ClearParam(key)
		for _, v := range values {
			dst.AddParam(key, v)
		}
	}
}

func (db *Db) record(kind, candidateID string, os *Os, duration time.Duration) {
	osID := ""
	if os != nil {
		osID = os.ID()
	}
	db.log.CatalogLogger("identify").LogIdentify(kind, candidateID, osID, duration, os != nil)
	db.metrics.RecordIdentify(kind, os != nil, duration)
}
