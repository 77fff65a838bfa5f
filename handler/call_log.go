package handler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kndndrj/gqlbee/core"
)

// maxLoggedCalls limits how many of the latest calls are persisted
const maxLoggedCalls = 100

func (h *Handler) storeCallLog() error {
	calls := h.Calls()
	if len(calls) > maxLoggedCalls {
		calls = calls[len(calls)-maxLoggedCalls:]
	}

	b, err := json.MarshalIndent(calls, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(h.callLogPath), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	file, err := os.Create(h.callLogPath)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	_, err = file.Write(b)
	if err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}

	return nil
}

func (h *Handler) restoreCallLog() error {
	file, err := os.Open(h.callLogPath)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)

	var calls []*core.Call

	err = decoder.Decode(&calls)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range calls {
		if _, ok := h.lookupCall[c.GetID()]; ok {
			continue
		}
		h.lookupCall[c.GetID()] = c
		h.callOrder = append(h.callOrder, c.GetID())
	}

	return nil
}
