// ABOUTME: Page collection store, the single owner of notebook state.
// ABOUTME: Every mutation is written through to the persistence gateway.

package notebook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/undo"
	"github.com/rs/zerolog"
)

var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")
var ErrAmbiguousPrefix = errors.New("prefix matches multiple pages")
var ErrPageNotFound = errors.New("page not found")
var ErrDuplicatePage = errors.New("duplicate page id")

// DefaultSaveTimeout bounds a single write-through save.
const DefaultSaveTimeout = 10 * time.Second

// Gateway persists the whole page collection.
type Gateway interface {
	Save(ctx context.Context, pages []*models.Page) error
	Load(ctx context.Context) ([]*models.Page, error)
}

type Store struct {
	mu          sync.Mutex
	pages       []*models.Page
	gateway     Gateway
	undo        *undo.Coordinator
	log         zerolog.Logger
	saveTimeout time.Duration
	degraded    error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithCoordinator replaces the default undo coordinator.
func WithCoordinator(c *undo.Coordinator) Option {
	return func(s *Store) {
		if c != nil {
			s.undo = c
		}
	}
}

// WithSaveTimeout bounds each save.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

// Open loads the collection through gw. Load failures never fail Open: the
// store starts empty and reports the problem through Degraded.
func Open(ctx context.Context, gw Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:     gw,
		log:         zerolog.Nop(),
		saveTimeout: DefaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.undo == nil {
		s.undo = undo.NewCoordinator()
	}

	pages, err := gw.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("load pages failed, starting empty")
		s.degraded = err
	}
	if pages == nil {
		pages = []*models.Page{}
	}
	s.pages = pages
	s.log.Debug().Int("pages", len(pages)).Msg("notebook loaded")
	return s
}

// Degraded returns the most recent storage failure, or nil once a later
// save succeeds.
func (s *Store) Degraded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// UndoCoordinator returns the coordinator holding pending deletes.
func (s *Store) UndoCoordinator() *undo.Coordinator {
	return s.undo
}

// Pages returns deep copies of every page in order.
func (s *Store) Pages() []*models.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Page, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.Clone()
	}
	return out
}

// Page returns a copy of the page with id.
func (s *Store) Page(id uuid.UUID) (*models.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return nil, false
	}
	return p.Clone(), true
}

// Block returns a copy of a block on a page.
func (s *Store) Block(pageID, blockID uuid.UUID) (models.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(pageID)
	if p == nil {
		return models.Block{}, false
	}
	i := p.BlockIndex(blockID)
	if i < 0 {
		return models.Block{}, false
	}
	return p.Blocks[i].Clone(), true
}

// Agenda lists events from every calendar block in day order.
func (s *Store) Agenda() []calendar.AgendaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.Agenda(s.pages)
}

// ResolvePage finds a page by full id or by an id prefix of at least six
// characters.
func (s *Store) ResolvePage(ref string) (uuid.UUID, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		if _, ok := s.Page(id); ok {
			return id, nil
		}
		return uuid.Nil, ErrPageNotFound
	}
	if len(ref) < 6 {
		return uuid.Nil, ErrPrefixTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var match uuid.UUID
	found := 0
	for _, p := range s.pages {
		if strings.HasPrefix(p.ID.String(), ref) {
			match = p.ID
			found++
		}
	}
	switch found {
	case 0:
		return uuid.Nil, ErrPageNotFound
	case 1:
		return match, nil
	default:
		return uuid.Nil, ErrAmbiguousPrefix
	}
}

// AddPage appends a page built from tmpl and returns a copy of it.
func (s *Store) AddPage(title string, tmpl models.Template) *models.Page {
	p := models.NewPage(strings.TrimSpace(title), models.Expand(tmpl))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, p)
	s.saveLocked()
	return p.Clone()
}

// DeletePage removes a page. A pending block delete on that page is dropped.
func (s *Store) DeletePage(id uuid.UUID) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.pages = append(s.pages[:idx], s.pages[idx+1:]...)
	s.saveLocked()
	s.mu.Unlock()

	if p, ok := s.undo.Pending(); ok && p.PageID == id {
		s.undo.Discard()
	}
	return true
}

// RenamePage sets a page title. An empty title resets it to the default.
func (s *Store) RenamePage(id uuid.UUID, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		title = models.DefaultPageTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return false
	}
	if p.Title == title {
		return true
	}
	p.Title = title
	s.saveLocked()
	return true
}

// AddBlock appends a new block to a page.
func (s *Store) AddBlock(pageID uuid.UUID, blockType models.BlockType, content string) (models.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(pageID)
	if p == nil {
		return models.Block{}, false
	}
	b := models.NewBlock(blockType, content)
	p.Blocks = append(p.Blocks, *b)
	s.saveLocked()
	return b.Clone(), true
}

// DeleteBlocks removes the blocks at positions, which may be scattered and
// unordered, and offers the delete for undo. It returns the number removed.
func (s *Store) DeleteBlocks(pageID uuid.UUID, positions []int) int {
	s.mu.Lock()
	p := s.findLocked(pageID)
	if p == nil {
		s.mu.Unlock()
		return 0
	}
	remaining, entries := undo.Remove(p.Blocks, positions)
	if len(entries) == 0 {
		s.mu.Unlock()
		return 0
	}
	p.Blocks = remaining
	s.saveLocked()
	s.mu.Unlock()

	// Capture runs unlocked so a host registrar may call back into the store.
	pending := s.undo.Capture(undo.Snapshot{PageID: pageID, Entries: entries}, s.Undo)
	s.log.Debug().Str("page", pageID.String()).Int("count", pending.Count).Msg("blocks deleted")
	return len(entries)
}

// Undo restores the pending block delete. It reports false when nothing is
// pending or the page no longer exists.
func (s *Store) Undo() bool {
	snap, ok := s.undo.Take()
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(snap.PageID)
	if p == nil {
		return false
	}
	p.Blocks = undo.Restore(p.Blocks, snap.Entries)
	s.saveLocked()
	return true
}

// Pending reports the block delete currently offered for undo.
func (s *Store) Pending() (undo.Pending, bool) {
	return s.undo.Pending()
}

// MoveBlocks moves the blocks at from so they sit before the block that was
// at index to, keeping their relative order. A to equal to the block count
// moves them to the end.
func (s *Store) MoveBlocks(pageID uuid.UUID, from []int, to int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(pageID)
	if p == nil {
		return 0
	}
	moved, n := moveOffsets(p.Blocks, from, to)
	if n == 0 {
		return 0
	}
	p.Blocks = moved
	s.saveLocked()
	return n
}

// UpdateBlock applies fn to a block in place. The block id and type cannot
// be changed, and fields the type does not use are cleared afterwards.
func (s *Store) UpdateBlock(pageID, blockID uuid.UUID, fn func(b *models.Block)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.blockLocked(pageID, blockID)
	if b == nil {
		return false
	}
	blockType := b.Type
	fn(b)
	b.ID = blockID
	b.Type = blockType
	b.Conform()
	s.saveLocked()
	return true
}

// EditBlockContent replaces the text of a text or todo block.
func (s *Store) EditBlockContent(pageID, blockID uuid.UUID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.blockLocked(pageID, blockID)
	if b == nil || b.Type == models.BlockTypeCalendar {
		return false
	}
	b.Content = content
	s.saveLocked()
	return true
}

// ToggleBlock flips the completion state of a todo block.
func (s *Store) ToggleBlock(pageID, blockID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.blockLocked(pageID, blockID)
	if b == nil || b.Type != models.BlockTypeTodo {
		return false
	}
	b.Toggle()
	s.saveLocked()
	return true
}

// SetEvent writes or clears the note for date on a calendar block. It
// reports whether the block was found and is a calendar block.
func (s *Store) SetEvent(pageID, blockID uuid.UUID, date time.Time, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.blockLocked(pageID, blockID)
	if b == nil || b.Type != models.BlockTypeCalendar {
		return false
	}
	if calendar.SetEvent(b, date, text) {
		s.saveLocked()
	}
	return true
}

// ReplaceAll swaps the whole collection, as an import does. Page ids must be
// unique. Any pending undo is dropped.
func (s *Store) ReplaceAll(pages []*models.Page) error {
	seen := make(map[uuid.UUID]bool, len(pages))
	next := make([]*models.Page, 0, len(pages))
	for _, p := range pages {
		if p == nil {
			continue
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePage, p.ID)
		}
		seen[p.ID] = true
		next = append(next, p.Clone())
	}

	s.undo.Discard()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = next
	s.saveLocked()
	return nil
}

func (s *Store) findLocked(id uuid.UUID) *models.Page {
	if i := s.indexLocked(id); i >= 0 {
		return s.pages[i]
	}
	return nil
}

func (s *Store) indexLocked(id uuid.UUID) int {
	for i, p := range s.pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) blockLocked(pageID, blockID uuid.UUID) *models.Block {
	p := s.findLocked(pageID)
	if p == nil {
		return nil
	}
	i := p.BlockIndex(blockID)
	if i < 0 {
		return nil
	}
	return &p.Blocks[i]
}

// saveLocked writes the collection through. Failures are logged and kept as
// the degraded signal; they never fail the mutation.
func (s *Store) saveLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.gateway.Save(ctx, s.pages); err != nil {
		s.log.Warn().Err(err).Int("pages", len(s.pages)).Msg("save pages failed")
		s.degraded = err
		return
	}
	s.degraded = nil
}
