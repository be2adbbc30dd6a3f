package httperr

import (
	"errors"
	"net/http"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

type businessMapping struct {
	status  int
	message string
}

// ===============================
// Código de negócio → HTTP
// ===============================

var businessTable = map[string]businessMapping{
	// 400
	"invalid_request":           {http.StatusBadRequest, "Dados inválidos."},
	"invalid_id":                {http.StatusBadRequest, "Identificador inválido."},
	"invalid_date":              {http.StatusBadRequest, "Data inválida."},
	"invalid_time":              {http.StatusBadRequest, "Horário inválido."},
	"invalid_time_range":        {http.StatusBadRequest, "Intervalo de horário inválido."},
	"invalid_date_range":        {http.StatusBadRequest, "Período inválido."},
	"range_too_large":           {http.StatusBadRequest, "Período muito longo."},
	"invalid_role":              {http.StatusBadRequest, "Perfil inválido."},
	"invalid_status":            {http.StatusBadRequest, "Status inválido."},
	"invalid_status_transition": {http.StatusBadRequest, "Transição de status não permitida."},
	"invalid_category":          {http.StatusBadRequest, "Categoria inválida."},
	"invalid_rating":            {http.StatusBadRequest, "Nota deve estar entre 1 e 5."},
	"invalid_email_domain":      {http.StatusBadRequest, "O domínio do e-mail informado não parece ser válido."},
	"invalid_image":             {http.StatusBadRequest, "Imagem inválida."},
	"services_required":         {http.StatusBadRequest, "Informe ao menos um serviço."},
	"service_inactive":          {http.StatusBadRequest, "Serviço indisponível."},
	"service_shop_mismatch":     {http.StatusBadRequest, "Serviço não pertence à barbearia do horário."},
	"slot_in_past":              {http.StatusBadRequest, "Horário já passou."},
	"too_soon":                  {http.StatusBadRequest, "Horário muito próximo. Respeite a antecedência mínima."},
	"booking_not_completed":     {http.StatusBadRequest, "Só é possível avaliar atendimentos concluídos."},
	"user_not_barber":           {http.StatusBadRequest, "Usuário não é barbeiro."},
	"weak_password":             {http.StatusBadRequest, "Senha muito curta."},

	// 401 / 403
	"invalid_credentials": {http.StatusUnauthorized, "E-mail ou senha inválidos."},
	"invalid_token":       {http.StatusUnauthorized, "Token inválido."},
	"forbidden":           {http.StatusForbidden, "Acesso negado."},
	"user_inactive":       {http.StatusForbidden, "Usuário desativado."},

	// 404
	"user_not_found":      {http.StatusNotFound, "Usuário não encontrado."},
	"shop_not_found":      {http.StatusNotFound, "Barbearia não encontrada."},
	"barber_not_found":    {http.StatusNotFound, "Barbeiro não encontrado."},
	"service_not_found":   {http.StatusNotFound, "Serviço não encontrado."},
	"specialty_not_found": {http.StatusNotFound, "Especialidade não encontrada."},
	"template_not_found":  {http.StatusNotFound, "Modelo de serviço não encontrado."},
	"slot_not_found":      {http.StatusNotFound, "Horário não encontrado."},
	"booking_not_found":   {http.StatusNotFound, "Agendamento não encontrado."},
	"not_found":           {http.StatusNotFound, "Registro não encontrado."},

	// 409
	"slot_unavailable":      {http.StatusConflict, "Horário indisponível."},
	"slot_booked":           {http.StatusConflict, "Horário já reservado."},
	"slot_locked":           {http.StatusConflict, "Horário sendo reservado por outro cliente. Tente novamente."},
	"status_conflict":       {http.StatusConflict, "O agendamento foi alterado por outra requisição."},
	"already_reviewed":      {http.StatusConflict, "Agendamento já avaliado."},
	"email_already_exists":  {http.StatusConflict, "E-mail já cadastrado."},
	"phone_already_exists":  {http.StatusConflict, "Telefone já cadastrado."},
	"slug_already_exists":   {http.StatusConflict, "Slug já utilizado."},
	"barber_has_other_shop": {http.StatusConflict, "Barbeiro já vinculado a outra barbearia."},
	"duplicate_key":         {http.StatusConflict, "Registro duplicado."},

	// 503
	"storage_disabled": {http.StatusServiceUnavailable, "Armazenamento de imagens não configurado."},
}

// StatusFor devolve o status HTTP e a mensagem de um código de negócio.
// Códigos desconhecidos viram 400.
func StatusFor(code string) (int, string) {
	if m, ok := businessTable[code]; ok {
		return m.status, m.message
	}
	return http.StatusBadRequest, code
}
