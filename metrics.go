package inetcore

import (
	"sync"
	"time"
)

// quantileEstimator implements the P² algorithm for streaming quantile
// estimation: O(1) per observation, no stored history.
//
// Reference: Jain, R. and Chlamtac, I. (1985). "The P² Algorithm for
// Dynamic Calculation of Quantiles and Histograms Without Storing
// Observations". Communications of the ACM, 28(10), pp. 1076-1085.
type quantileEstimator struct {
	p          float64
	q          [5]float64
	n          [5]int
	np         [5]float64
	dn         [5]float64
	count      int
	initBuffer [5]float64
}

func newQuantileEstimator(p float64) *quantileEstimator {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return &quantileEstimator{p: p, dn: [5]float64{0, p / 2, p, (1 + p) / 2, 1}}
}

func (e *quantileEstimator) update(x float64) {
	e.count++
	if e.count <= 5 {
		e.initBuffer[e.count-1] = x
		if e.count == 5 {
			e.initialize()
		}
		return
	}

	var k int
	switch {
	case x < e.q[0]:
		e.q[0] = x
		k = 0
	case x >= e.q[4]:
		e.q[4] = x
		k = 3
	default:
		for k = 0; k < 4; k++ {
			if e.q[k] <= x && x < e.q[k+1] {
				break
			}
		}
	}

	for i := k + 1; i < 5; i++ {
		e.n[i]++
	}
	for i := 0; i < 5; i++ {
		e.np[i] += e.dn[i]
	}
	for i := 1; i < 4; i++ {
		d := e.np[i] - float64(e.n[i])
		if (d >= 1 && e.n[i+1]-e.n[i] > 1) || (d <= -1 && e.n[i-1]-e.n[i] < -1) {
			sign := 1
			if d < 0 {
				sign = -1
			}
			qPrime := e.parabolic(i, sign)
			if e.q[i-1] < qPrime && qPrime < e.q[i+1] {
				e.q[i] = qPrime
			} else {
				e.q[i] = e.linear(i, sign)
			}
			e.n[i] += sign
		}
	}
}

func (e *quantileEstimator) initialize() {
	for i := 1; i < 5; i++ {
		key := e.initBuffer[i]
		j := i - 1
		for j >= 0 && e.initBuffer[j] > key {
			e.initBuffer[j+1] = e.initBuffer[j]
			j--
		}
		e.initBuffer[j+1] = key
	}
	for i := 0; i < 5; i++ {
		e.q[i] = e.initBuffer[i]
		e.n[i] = i
	}
	e.np = [5]float64{0, 2 * e.p, 4 * e.p, 2 + 2*e.p, 4}
}

func (e *quantileEstimator) parabolic(i, d int) float64 {
	df := float64(d)
	ni := float64(e.n[i])
	niPrev := float64(e.n[i-1])
	niNext := float64(e.n[i+1])
	term1 := df / (niNext - niPrev)
	term2 := (ni - niPrev + df) * (e.q[i+1] - e.q[i]) / (niNext - ni)
	term3 := (niNext - ni - df) * (e.q[i] - e.q[i-1]) / (ni - niPrev)
	return e.q[i] + term1*(term2+term3)
}

func (e *quantileEstimator) linear(i, d int) float64 {
	if d == 1 {
		return e.q[i] + (e.q[i+1]-e.q[i])/float64(e.n[i+1]-e.n[i])
	}
	return e.q[i] - (e.q[i]-e.q[i-1])/float64(e.n[i]-e.n[i-1])
}

func (e *quantileEstimator) quantile() float64 {
	if e.count == 0 {
		return 0
	}
	if e.count < 5 {
		sorted := make([]float64, e.count)
		copy(sorted, e.initBuffer[:e.count])
		for i := 1; i < e.count; i++ {
			key := sorted[i]
			j := i - 1
			for j >= 0 && sorted[j] > key {
				sorted[j+1] = sorted[j]
				j--
			}
			sorted[j+1] = key
		}
		idx := int(float64(e.count-1) * e.p)
		if idx >= e.count {
			idx = e.count - 1
		}
		return sorted[idx]
	}
	return e.q[2]
}

// Metrics is a point-in-time snapshot of a Machine's reduction progress.
type Metrics struct {
	// Interactions is the total number of interactions performed so far.
	Interactions uint64
	// Elapsed is the time since Run started.
	Elapsed time.Duration
	// TickBatchP50 and TickBatchP99 are streaming estimates of the
	// distribution of how many interactions a worker performs per tick
	// (a tick drains the worker's bag completely). Ticks with no
	// interactions are not counted.
	TickBatchP50 float64
	TickBatchP99 float64
}

// machineMetrics aggregates per-tick batch sizes across every worker
// behind a single mutex. Contention is negligible relative to the cost of
// a tick itself, so a plain mutex (rather than per-worker estimators
// merged later) keeps this simple.
type machineMetrics struct {
	mu        sync.Mutex
	p50       *quantileEstimator
	p99       *quantileEstimator
	startedAt time.Time
}

func newMachineMetrics() *machineMetrics {
	return &machineMetrics{
		p50: newQuantileEstimator(0.50),
		p99: newQuantileEstimator(0.99),
	}
}

func (m *machineMetrics) start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startedAt = time.Now()
}

func (m *machineMetrics) observeTickBatch(n int) {
	if n == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p50.update(float64(n))
	m.p99.update(float64(n))
}

func (m *machineMetrics) snapshot(interactions uint64) Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Metrics{
		Interactions: interactions,
		Elapsed:      time.Since(m.startedAt),
		TickBatchP50: m.p50.quantile(),
		TickBatchP99: m.p99.quantile(),
	}
}
