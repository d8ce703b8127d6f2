package dto

// PageRequest ventana de paginación que aceptan todos los listados. Los
// valores llegan por query string; cero significa "usar el por defecto".
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage normaliza la ventana: límite de 20 si no se pidió otro y
// offset nunca negativo.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse eco de la ventana aplicada, para que el cliente pagine sin
// recalcular nada. Total solo se incluye cuando el listado lo conoce.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo único de error de la API: un código estable para
// programar contra él y un mensaje legible en español.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
