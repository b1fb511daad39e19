package comentario

// CriarComentarioRequest define o corpo de POST /api/orders/{id}/comments.
type CriarComentarioRequest struct {
	Conteudo string `json:"content"`
	Interno  bool   `json:"is_internal"`
}
