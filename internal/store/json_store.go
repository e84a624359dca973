package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/config"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// JSONStore persists snapshot, prior ranks and history as JSON files
// ⭐ SSOT: 상태 파일 읽기/쓰기는 여기서만
type JSONStore struct {
	snapshotPath string
	prevRankPath string
	historyPath  string
	logger       *logger.Logger
}

var _ contracts.StateStore = (*JSONStore)(nil)

// New creates a store over the configured state files
func New(cfg config.StateConfig, log *logger.Logger) *JSONStore {
	return &JSONStore{
		snapshotPath: cfg.SnapshotPath(),
		prevRankPath: cfg.PrevRankPath(),
		historyPath:  cfg.HistoryPath(),
		logger:       log,
	}
}

// LoadPriorRanks reads the prior-rank index
// 파일 없음/손상 → 빈 인덱스 (첫 실행)
func (s *JSONStore) LoadPriorRanks() (contracts.PriorRankIndex, error) {
	idx := contracts.PriorRankIndex{}
	if ok := s.readTolerant(s.prevRankPath, &idx); !ok {
		return contracts.PriorRankIndex{}, nil
	}
	return idx, nil
}

// LoadHistory reads the history ledger
// 파일 없음/손상 → 빈 히스토리
func (s *JSONStore) LoadHistory() ([]contracts.HistoryEntry, error) {
	var entries []contracts.HistoryEntry
	if ok := s.readTolerant(s.historyPath, &entries); !ok || entries == nil {
		return []contracts.HistoryEntry{}, nil
	}
	return entries, nil
}

// LoadSnapshot reads the current snapshot, nil if none exists yet
func (s *JSONStore) LoadSnapshot() (*contracts.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap contracts.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.snapshotPath, err)
	}
	return &snap, nil
}

// readTolerant decodes path into dest, reporting false on absence or corruption
func (s *JSONStore) readTolerant(path string, dest interface{}) bool {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WithField("path", path).Debug("State file not found, starting empty")
		return false
	}
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("State file unreadable, treating as empty")
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("State file corrupt, treating as empty")
		return false
	}
	return true
}

// document is one state file and the value written to it
type document struct {
	path  string
	value interface{}
}

// rename is swapped in tests to simulate a failing commit step
var rename = os.Rename

// Commit writes all three documents or none
// 임시 파일에 모두 기록 후 rename, 중간 실패 시 이미 교체된 파일은 원본으로 복구
func (s *JSONStore) Commit(snap *contracts.Snapshot, prior contracts.PriorRankIndex, entries []contracts.HistoryEntry) error {
	// 직전 순위 파일은 마지막에 교체
	docs := []document{
		{s.snapshotPath, snap},
		{s.historyPath, entries},
		{s.prevRankPath, prior},
	}

	staged := make([]string, 0, len(docs))
	cleanup := func(from int) {
		for _, tmp := range staged[from:] {
			_ = os.Remove(tmp)
		}
	}

	for _, d := range docs {
		tmp, err := stage(d.path, d.value)
		if err != nil {
			cleanup(0)
			return fmt.Errorf("stage %s: %w", filepath.Base(d.path), err)
		}
		staged = append(staged, tmp)
	}

	originals := make([]*[]byte, len(docs))
	for i, d := range docs {
		data, err := os.ReadFile(d.path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			cleanup(0)
			return fmt.Errorf("backup %s: %w", filepath.Base(d.path), err)
		}
		originals[i] = &data
	}

	for i, d := range docs {
		if err := rename(staged[i], d.path); err != nil {
			cleanup(i)
			commitErr := fmt.Errorf("commit %s: %w", filepath.Base(d.path), err)
			if rbErr := s.rollback(docs[:i], originals[:i]); rbErr != nil {
				return errors.Join(commitErr, rbErr)
			}
			return commitErr
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"snapshot":    s.snapshotPath,
		"prev_ranks":  s.prevRankPath,
		"history":     s.historyPath,
		"history_len": len(entries),
	}).Info("State committed")

	return nil
}

// rollback restores already replaced documents (nil original = file did not exist)
func (s *JSONStore) rollback(docs []document, originals []*[]byte) error {
	var errs []error
	for i, d := range docs {
		if originals[i] == nil {
			if err := os.Remove(d.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("rollback %s: %w", filepath.Base(d.path), err))
			}
			continue
		}
		tmp, err := writeTemp(d.path, *originals[i])
		if err == nil {
			err = os.Rename(tmp, d.path)
			if err != nil {
				os.Remove(tmp)
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", filepath.Base(d.path), err))
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"restored": len(docs),
		"failed":   len(errs),
	}).Warn("State commit rolled back")

	return errors.Join(errs...)
}

// stage writes value as indented JSON into a temp file next to path
func stage(path string, value interface{}) (string, error) {
	data, err := encode(value)
	if err != nil {
		return "", err
	}
	return writeTemp(path, data)
}

// writeTemp writes data to a synced temp file in path's directory
func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// encode marshals with 2-space indent, non-ASCII kept as-is
func encode(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
