package marketdata

import "time"

// OHLCV is one daily bar of a historical series.
type OHLCV struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// OHLCVs is a chronologically ordered series of bars.
type OHLCVs []OHLCV

func (o OHLCVs) Dates() (val []time.Time) {
	val = make([]time.Time, len(o))
	for i, v := range o {
		val[i] = v.Date
	}
	return val
}

func (o OHLCVs) Open() (val []float64) {
	val = make([]float64, len(o))
	for i, v := range o {
		val[i] = v.Open
	}
	return val
}

func (o OHLCVs) High() (val []float64) {
	val = make([]float64, len(o))
	for i, v := range o {
		val[i] = v.High
	}
	return val
}

func (o OHLCVs) Low() (val []float64) {
	val = make([]float64, len(o))
	for i, v := range o {
		val[i] = v.Low
	}
	return val
}

func (o OHLCVs) Close() (val []float64) {
	val = make([]float64, len(o))
	for i, v := range o {
		val[i] = v.Close
	}
	return val
}

func (o OHLCVs) Volume() (val []float64) {
	val = make([]float64, len(o))
	for i, v := range o {
		val[i] = v.Volume
	}
	return val
}
