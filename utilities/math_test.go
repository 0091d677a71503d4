package utilities

import (
	"math"
	"testing"
)

type testCaseAbs struct {
	input, expected int
}

var testCasesAbs = []testCaseAbs{
	{-4, 4},
	{1, 1},
	{-1, 1},
	{-3, 3},
	{-10, 10},
	{0, 0},
}

type testCaseMax struct {
	inputA, inputB, expected int
}

var testCasesMax = []testCaseMax{
	{-4, 3, 3},
	{4, 5, 5},
	{2, 1, 2},
	{10, 4, 10},
	{-1, 1, 1},
}

type testCaseMin struct {
	inputA, inputB, expected int
}

var testCasesMin = []testCaseMin{
	{-4, 3, -4},
	{4, 5, 4},
	{2, 1, 1},
	{10, 4, 4},
	{-1, 1, -1},
}

func TestAbs(t *testing.T) {
	for _, testCase := range testCasesAbs {
		actual := Abs(testCase.input)
		if actual != testCase.expected {
			t.Errorf("Abs doesn't match expected value for %d: got %d, want %d", testCase.input, actual, testCase.expected)
		}
	}
}

func TestMax(t *testing.T) {
	for _, testCase := range testCasesMax {
		actual := Max(testCase.inputA, testCase.inputB)
		if actual != testCase.expected {
			t.Errorf("Max doesn't match expected value for %d & %d: got %d, want %d", testCase.inputA, testCase.inputB, actual, testCase.expected)
		}
	}
}

func TestMin(t *testing.T) {
	for _, testCase := range testCasesMin {
		actual := Min(testCase.inputA, testCase.inputB)
		if actual != testCase.expected {
			t.Errorf("Min doesn't match expected value for %d & %d: got %d, want %d", testCase.inputA, testCase.inputB, actual, testCase.expected)
		}
	}
}

type testCaseSatAdd struct {
	inputA, inputB, expected int64
}

var testCasesSatAdd = []testCaseSatAdd{
	{1, 2, 3},
	{0, 0, 0},
	{math.MaxInt64, 1, math.MaxInt64},
	{math.MaxInt64 - 1, 1, math.MaxInt64},
	{math.MaxInt64 - 1, 2, math.MaxInt64},
	{math.MaxInt64, math.MaxInt64, math.MaxInt64},
}

func TestSaturatingAdd(t *testing.T) {
	for _, testCase := range testCasesSatAdd {
		actual := SaturatingAdd(testCase.inputA, testCase.inputB)
		if actual != testCase.expected {
			t.Errorf("SaturatingAdd doesn't match expected value for %d & %d: got %d, want %d", testCase.inputA, testCase.inputB, actual, testCase.expected)
		}
	}
}
