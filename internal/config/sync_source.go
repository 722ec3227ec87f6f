package config

import "github.com/ralt/pkgsync/internal/models"

// SyncSourceKind tells which option the files to sync came from.
type SyncSourceKind int

const (
	SyncUnset SyncSourceKind = iota
	// SyncLegacy means only the deprecated synced_files option was given.
	SyncLegacy
	// SyncModern means files_to_sync was given, possibly empty.
	SyncModern
)

func (k SyncSourceKind) String() string {
	switch k {
	case SyncLegacy:
		return "synced_files"
	case SyncModern:
		return "files_to_sync"
	default:
		return "unset"
	}
}

// SyncSource records, once, which file-sync option is in effect.
type SyncSource struct {
	kind  SyncSourceKind
	items []models.SyncFilesItem
}

// UnsetSync is the source used when neither option was configured.
func UnsetSync() SyncSource { return SyncSource{} }

// LegacySync wraps items from the deprecated synced_files option.
func LegacySync(items []models.SyncFilesItem) SyncSource {
	return SyncSource{kind: SyncLegacy, items: cloneItems(items)}
}

// ModernSync wraps items from files_to_sync. An empty list is still modern.
func ModernSync(items []models.SyncFilesItem) SyncSource {
	if items == nil {
		items = []models.SyncFilesItem{}
	}
	return SyncSource{kind: SyncModern, items: cloneItems(items)}
}

// syncSourceFrom applies the precedence between both options.
func syncSourceFrom(legacy, modern *[]models.SyncFilesItem) SyncSource {
	switch {
	case modern != nil:
		return ModernSync(*modern)
	case legacy != nil:
		return LegacySync(*legacy)
	default:
		return UnsetSync()
	}
}

// Kind returns which option is in effect.
func (s SyncSource) Kind() SyncSourceKind { return s.kind }

// Items returns the files to sync. Modern lists always win, even when empty.
func (s SyncSource) Items() []models.SyncFilesItem {
	switch s.kind {
	case SyncModern, SyncLegacy:
		return cloneItems(s.items)
	default:
		return []models.SyncFilesItem{}
	}
}

// autoIncludes reports whether the specfile and config file get appended
// to the sync list.
func (s SyncSource) autoIncludes() bool {
	return s.kind != SyncModern
}

func cloneItems(items []models.SyncFilesItem) []models.SyncFilesItem {
	out := make([]models.SyncFilesItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Src = append([]string(nil), item.Src...)
		out[i].Filters = append([]string(nil), item.Filters...)
	}
	return out
}
