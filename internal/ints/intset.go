// Package ints contains a compact set of small non-negative integers.
package ints

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

type Set struct {
	lowItem, highItem int
	chunks            []uint
}

func countBits(chunk uint) int {
	result := 0
	for chunk != 0 {
		result++
		chunk &= (chunk - 1)
	}
	return result
}

// NewSet creates a set containing items.
func NewSet(items ...int) *Set {
	result := &Set{0, 0, []uint{}}
	if len(items) > 0 {
		result.Add(items...)
	}
	return result
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, s.Len())
	item := s.lowItem
	index := 0
	for _, chunk := range s.chunks {
		for i := IntSize; i > 0; i-- {
			if chunk&1 != 0 {
				result[index] = item
				index++
			}
			item++
			chunk = chunk >> 1
		}
	}
	return result
}

func (s *Set) baseItem(item int) int {
	return item & ^(IntSize - 1)
}

func (s *Set) allocate(low, high int) {
	lowItem := s.baseItem(low)
	highItem := s.baseItem(high) + IntSize
	if lowItem >= s.lowItem && highItem <= s.highItem {
		return
	}

	if lowItem > s.lowItem {
		lowItem = s.lowItem
	}
	if highItem < s.highItem {
		highItem = s.highItem
	}

	chunkCnt := (highItem - lowItem) >> IntSizeShift
	chunks := make([]uint, chunkCnt)
	if s.lowItem != 0 || s.highItem != 0 {
		offset := (s.lowItem - lowItem) >> IntSizeShift
		copy(chunks[offset:], s.chunks)
	}
	s.chunks = chunks
	s.lowItem = lowItem
	s.highItem = highItem
}

func (s *Set) chunkIndex(item int) int {
	return (item - s.lowItem) >> IntSizeShift
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s *Set) doSet(item int) {
	s.chunks[s.chunkIndex(item)] |= bitMask(item)
}

func minMax(items []int) (min, max int) {
	min = items[0]
	max = items[0]
	for i := 1; i < len(items); i++ {
		item := items[i]
		if item < min {
			min = item
		}
		if item > max {
			max = item
		}
	}
	return
}

func (s *Set) Add(items ...int) *Set {
	if len(items) == 0 {
		return s
	}

	min, max := minMax(items)
	s.allocate(min, max)
	for _, item := range items {
		s.doSet(item)
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < s.lowItem || item >= s.highItem {
		return false
	} else {
		return (s.chunks[s.chunkIndex(item)]&bitMask(item) != 0)
	}
}

// Len returns the number of items in the set.
func (s *Set) Len() int {
	res := 0
	for _, chunk := range s.chunks {
		res += countBits(chunk)
	}
	return res
}
