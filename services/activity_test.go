package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendInsertsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	log := NewActivityLog(store, 1000, nil)

	log.Append("Created mission", "First")
	log.Append("Created mission", "Second")

	entries, _ := store.LoadHistory()
	assert.Len(t, entries, 2)
	assert.Equal(t, "Second", entries[0].Detail)
	assert.Equal(t, "First", entries[1].Detail)
	assert.NotEmpty(t, entries[0].Date)
}

func TestAppendTruncatesAtCap(t *testing.T) {
	store := newTestStore(t)
	log := NewActivityLog(store, 5, nil)

	for i := 0; i < 8; i++ {
		log.Append("Created mission", fmt.Sprintf("entry-%d", i))
	}

	entries, _ := store.LoadHistory()
	assert.Len(t, entries, 5)
	assert.Equal(t, "entry-7", entries[0].Detail)
	assert.Equal(t, "entry-3", entries[4].Detail)
}
