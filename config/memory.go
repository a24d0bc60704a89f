// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strconv"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/katalvlaran/pairalign/costtable"
)

const cellBytes = strconv.IntSize / 8

// availableMemory is swapped out in tests.
var availableMemory = func() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// CellBudget returns how many cost table cells fit in fraction of the
// currently available memory. Zero means unlimited.
func CellBudget(fraction float64) (int64, error) {
	if fraction <= 0 {
		return 0, nil
	}
	avail, err := availableMemory()
	if err != nil {
		return 0, fmt.Errorf("config: available memory: %w", err)
	}
	cells := int64(float64(avail) * fraction / cellBytes)
	if cells < 1 {
		cells = 1
	}
	return cells, nil
}

// ApplyMemoryBudget installs CellBudget(fraction) as the process-wide cost
// table limit and returns it. The limit covers all tables alive at once.
func ApplyMemoryBudget(fraction float64) (int64, error) {
	cells, err := CellBudget(fraction)
	if err != nil {
		return 0, err
	}
	costtable.SetMaxCells(cells)
	return cells, nil
}
