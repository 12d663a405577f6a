package mockapi

import "github.com/pkg/errors"

// Response wraps every successful backend result, mirroring a REST envelope.
type Response struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	messageOK      = "Operación exitosa"
	messageCreated = "Recurso creado exitosamente"
)

func ok(data any) *Response {
	return &Response{Data: data, Status: 200, Message: messageOK}
}

func created(data any) *Response {
	return &Response{Data: data, Status: 201, Message: messageCreated}
}

// Data extracts the envelope payload as T.
func Data[T any](resp *Response) (T, error) {
	v, ok := resp.Data.(T)
	if !ok {
		var zero T
		return zero, errors.Errorf("[Data] unexpected payload type %T", resp.Data)
	}
	return v, nil
}
