package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ack is the acknowledgement returned for a stored submission.
type Ack struct {
	OK bool   `json:"ok"`
	ID uint64 `json:"id"`
}

// Failure is the error shape of the API. Clients only get a boolean flag
// and a fixed human-readable message, never the failure cause.
type Failure struct {
	OK   bool   `json:"ok"`
	Erro string `json:"erro"`
}

// OK sends the success acknowledgement with the assigned identifier
func OK(c *gin.Context, id uint64) {
	c.JSON(http.StatusOK, Ack{OK: true, ID: id})
}

// InternalError sends the generic internal-error response
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Failure{OK: false, Erro: "Erro interno"})
}

// BadRequest sends the generic rejection for bodies that cannot be parsed
func BadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, Failure{OK: false, Erro: "Pedido inválido"})
}

// PayloadTooLarge sends the rejection for bodies over the configured ceilings
func PayloadTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, Failure{OK: false, Erro: "Ficheiro demasiado grande"})
}
