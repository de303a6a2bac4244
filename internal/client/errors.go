package client

import "fmt"

// Mensajes por defecto por operación, para cuando el servidor no manda
// ninguno. Siempre se muestra algo al usuario, nunca se traga el error.
var defaultMessages = map[string]string{
	"FetchForest":  "No se pudo cargar el organigrama",
	"CreateNode":   "No se pudo crear el puesto",
	"BindPerson":   "No se pudo asociar el usuario",
	"UnbindPerson": "No se pudo liberar el puesto",
	"DeleteNode":   "No se pudo eliminar el puesto",
	"UpdateNode":   "No se pudo actualizar el puesto",
}

// NetworkError: el request no llegó o la respuesta no volvió.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: error de red: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError: credencial ausente o vencida. La maneja el colaborador de
// autenticación externo, acá solo se propaga.
type AuthError struct {
	Op string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: sesión inválida o vencida", e.Op)
}

// ServerError: el servidor respondió con error. Message es el mensaje del
// servidor si vino, o el default de la operación.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func messageOrDefault(op, serverMsg string) string {
	if serverMsg != "" {
		return serverMsg
	}
	if msg, ok := defaultMessages[op]; ok {
		return msg
	}
	return "Error inesperado"
}
