package conf

const defaultFlushInterval = 10
const defaultEventQueueSize = 50
const defaultHTTPTimeout = 30
const defaultDiagnosticsSamplingRate = 0.0001
