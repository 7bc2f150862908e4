// Package state caches the latest complaint snapshot published by the
// backend watcher so screens can render without querying the service.
package state

import (
	"time"

	"github.com/atomicstack/reclamation-control/internal/complaint"
)

type ComplaintStore interface {
	Entries() []complaint.Complaint
	SetEntries([]complaint.Complaint)
	ByAuthor(id int64) []complaint.Complaint
	Find(id string) (complaint.Complaint, bool)
	Upsert(complaint.Complaint)
	Stats() complaint.Stats
	SetStats(complaint.Stats)
	UpdatedAt() time.Time
	Loaded() bool
}

type complaintStore struct {
	entries   []complaint.Complaint
	stats     complaint.Stats
	updatedAt time.Time
	loaded    bool
	now       func() time.Time

	// local holds complaints written through Upsert that no snapshot has
	// caught up with yet.
	local map[string]complaint.Complaint
}

func NewComplaintStore() ComplaintStore {
	return &complaintStore{now: time.Now, local: map[string]complaint.Complaint{}}
}

func (s *complaintStore) Entries() []complaint.Complaint {
	return cloneComplaints(s.entries)
}

// SetEntries replaces the cache with a snapshot. A local write stays visible
// until a snapshot carries the same complaint at least as recent as the
// local copy, so a poll that started before the write cannot hide it.
func (s *complaintStore) SetEntries(entries []complaint.Complaint) {
	s.entries = cloneComplaints(entries)
	s.loaded = true
	s.updatedAt = s.now()
	for id, mine := range s.local {
		if remote, ok := s.Find(id); ok && !remote.UpdatedAt.Before(mine.UpdatedAt) {
			delete(s.local, id)
			continue
		}
		s.put(mine)
	}
}

func (s *complaintStore) ByAuthor(id int64) []complaint.Complaint {
	var out []complaint.Complaint
	for _, c := range s.entries {
		if c.Author.ID == id {
			out = append(out, c)
		}
	}
	return out
}

func (s *complaintStore) Find(id string) (complaint.Complaint, bool) {
	for _, c := range s.entries {
		if c.ID == id {
			return c, true
		}
	}
	return complaint.Complaint{}, false
}

// Upsert replaces the entry with the same id or prepends a new one, keeping
// newest-first order for fresh submissions.
func (s *complaintStore) Upsert(c complaint.Complaint) {
	s.local[c.ID] = c
	s.put(c)
}

func (s *complaintStore) put(c complaint.Complaint) {
	for i := range s.entries {
		if s.entries[i].ID == c.ID {
			s.entries[i] = c
			return
		}
	}
	s.entries = append([]complaint.Complaint{c}, s.entries...)
}

func (s *complaintStore) Stats() complaint.Stats {
	return cloneStats(s.stats)
}

func (s *complaintStore) SetStats(stats complaint.Stats) {
	s.stats = cloneStats(stats)
}

func (s *complaintStore) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *complaintStore) Loaded() bool {
	return s.loaded
}

func cloneComplaints(entries []complaint.Complaint) []complaint.Complaint {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]complaint.Complaint, len(entries))
	copy(dup, entries)
	return dup
}

func cloneStats(stats complaint.Stats) complaint.Stats {
	dup := complaint.Stats{Total: stats.Total}
	if stats.ByStatus != nil {
		dup.ByStatus = make(map[complaint.Status]int, len(stats.ByStatus))
		for k, v := range stats.ByStatus {
			dup.ByStatus[k] = v
		}
	}
	if stats.ByCategory != nil {
		dup.ByCategory = make(map[complaint.Category]int, len(stats.ByCategory))
		for k, v := range stats.ByCategory {
			dup.ByCategory[k] = v
		}
	}
	return dup
}
