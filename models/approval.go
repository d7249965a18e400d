package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ApprovalStatus is the lifecycle state of a submitted record.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
)

var statusSynonyms = map[ApprovalStatus][]string{
	StatusPending:  {"pending", "0"},
	StatusApproved: {"approved", "approve", "1"},
	StatusRejected: {"rejected", "reject", "2"},
}

var statusAliasToCanonical = buildStatusAliasMap()

func buildStatusAliasMap() map[string]ApprovalStatus {
	aliasMap := make(map[string]ApprovalStatus)
	for canonical, synonyms := range statusSynonyms {
		aliasMap[normalizeStatus(string(canonical))] = canonical
		for _, alias := range synonyms {
			aliasMap[normalizeStatus(alias)] = canonical
		}
	}
	return aliasMap
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseApprovalStatus maps any accepted spelling onto the canonical status.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	if status, ok := statusAliasToCanonical[normalizeStatus(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown approval status %q", s)
}

func (s ApprovalStatus) Valid() bool {
	_, ok := statusSynonyms[s]
	return ok
}

func (s ApprovalStatus) String() string {
	return string(s)
}

// allowedTransitions lists every legal status change of a draft. Approved is
// terminal: the draft row is deleted right after it is set.
var allowedTransitions = map[ApprovalStatus][]ApprovalStatus{
	StatusPending:  {StatusPending, StatusApproved, StatusRejected},
	StatusRejected: {StatusPending},
	StatusApproved: {},
}

// CanTransition reports whether a draft may move from one status to another.
func CanTransition(from, to ApprovalStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Link is one side of the draft <-> approved cross reference.
type Link struct {
	ID        uint      `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Links is stored as a JSON column.
type Links = datatypes.JSONSlice[Link]

// HasLink reports whether links contains the given id.
func HasLink(links Links, id uint) bool {
	for _, l := range links {
		if l.ID == id {
			return true
		}
	}
	return false
}

// WithoutLink returns links minus every entry that points at id.
func WithoutLink(links Links, id uint) Links {
	out := make(Links, 0, len(links))
	for _, l := range links {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
