package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// MonthsPerYear is the number of calendar months in a Monthly value
const MonthsPerYear = 12

// Monthly holds one energy value (kWh) per calendar month.
// Index 0 is January; use At/Set with 1-based month numbers.
type Monthly [MonthsPerYear]float64

// NewMonthlyFlat returns a Monthly with the same value in every month
func NewMonthlyFlat(v float64) Monthly {
	var m Monthly
	for i := range m {
		m[i] = v
	}
	return m
}

// At returns the value for month 1..12
func (m Monthly) At(month int) float64 {
	return m[month-1]
}

// Set assigns the value for month 1..12
func (m *Monthly) Set(month int, v float64) {
	m[month-1] = v
}

// Total returns the sum of all twelve months
func (m Monthly) Total() float64 {
	return floats.Sum(m[:])
}

// Scale returns a copy with every month multiplied by factor
func (m Monthly) Scale(factor float64) Monthly {
	out := m
	floats.Scale(factor, out[:])
	return out
}

// HasNegative reports whether any month is below zero
func (m Monthly) HasNegative() bool {
	for _, v := range m {
		if v < 0 {
			return true
		}
	}
	return false
}

// toMap converts to the "1".."12" keyed form used in files and APIs
func (m Monthly) toMap() map[string]float64 {
	out := make(map[string]float64, MonthsPerYear)
	for i, v := range m {
		out[strconv.Itoa(i+1)] = v
	}
	return out
}

func monthlyFromMap(raw map[string]float64) (Monthly, error) {
	var m Monthly
	for key, v := range raw {
		month, err := strconv.Atoi(key)
		if err != nil || month < 1 || month > MonthsPerYear {
			return m, fmt.Errorf("invalid month key %q", key)
		}
		m[month-1] = v
	}
	for month := 1; month <= MonthsPerYear; month++ {
		if _, ok := raw[strconv.Itoa(month)]; !ok {
			return m, fmt.Errorf("missing value for month %d", month)
		}
	}
	return m, nil
}

// MarshalJSON encodes as an object keyed by month number
func (m Monthly) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.toMap())
}

// UnmarshalJSON requires all twelve month keys
func (m *Monthly) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := monthlyFromMap(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML encodes as a mapping keyed by month number
func (m Monthly) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, v := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(i + 1)},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'f', -1, 64)},
		)
	}
	return node, nil
}

// UnmarshalYAML requires all twelve month keys
func (m *Monthly) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := monthlyFromMap(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
