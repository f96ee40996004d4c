package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesStarted      int
	matchesCompleted    int
	pointsRecorded      int
	tiebreaksStarted    int
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	brokerPublishFailed int
	liveClients         int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesStarted++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) IncPointsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pointsRecorded++
}

func (m *Mock) IncTiebreaksStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiebreaksStarted++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncBrokerPublishFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brokerPublishFailed++
}

func (m *Mock) SetLiveClients(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveClients = n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesStarted returns the number of times IncMatchesStarted was called.
func (m *Mock) MatchesStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesStarted
}

// MatchesCompleted returns the number of times IncMatchesCompleted was called.
func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// PointsRecorded returns the number of times IncPointsRecorded was called.
func (m *Mock) PointsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointsRecorded
}

// TiebreaksStarted returns the number of times IncTiebreaksStarted was called.
func (m *Mock) TiebreaksStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tiebreaksStarted
}

// ProcessingDurations returns every observed duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// BrokerPublishFailed returns the number of times IncBrokerPublishFailed was called.
func (m *Mock) BrokerPublishFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brokerPublishFailed
}

// LiveClients returns the last value passed to SetLiveClients.
func (m *Mock) LiveClients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveClients
}
