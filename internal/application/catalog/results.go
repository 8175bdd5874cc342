package catalog

// Result is the generic envelope returned by every command. Messages are
// stable strings; internal exception detail never leaks through them.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResult is a Result carrying a payload.
type DataResult[T any] struct {
	Result
	Data T `json:"data,omitempty"`
}

func success(message string) Result {
	return Result{Success: true, Message: message}
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

func successData[T any](message string, data T) DataResult[T] {
	return DataResult[T]{Result: success(message), Data: data}
}

func failureData[T any](message string) DataResult[T] {
	return DataResult[T]{Result: failure(message)}
}
