package api

import (
	"io"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data []byte
	pos  int
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	return nil
}

// MockHttpClient is a mock HTTPDoer that answers per query function
type MockHttpClient struct {
	mu        sync.Mutex
	Responses map[string]*fhttp.Response // keyed by the "function" query parameter
	Response  *fhttp.Response            // fallback when no function-specific response is set
	Err       error
	Requests  []*fhttp.Request
}

// Do implements HTTPDoer
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return nil, m.Err
	}
	if resp, ok := m.Responses[req.URL.Query().Get("function")]; ok {
		return resp, nil
	}
	return m.Response, nil
}

// newMockResponse builds a response with the given body and status
func newMockResponse(body string, statusCode int) *fhttp.Response {
	return &fhttp.Response{
		StatusCode: statusCode,
		Body:       NewMockResponseBody([]byte(body)),
		Header:     make(fhttp.Header),
	}
}

// NewMockHttpClient creates a new MockHttpClient with a single response for every call
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{Response: newMockResponse(string(body), statusCode)}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}
