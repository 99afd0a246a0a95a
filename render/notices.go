package render

// Fixed notices for the terminal states of each operation.

func ClientNotFound() string {
	return "⚠️ <b>Cliente não encontrado</b>\n\nVerifique o código informado e tente novamente."
}

func ServerError() string {
	return "⚙️ <b>Erro no Servidor</b>\n\nOcorreu um erro interno ao tentar consultar os dados."
}

func EquipmentNotFound() string {
	return "⚠️ <b>Cliente não encontrado.</b>\n\nVerifique o código informado e tente novamente."
}

func EquipmentInvalidQuery() string {
	return "⚙️ <b>Cliente não encontrado.</b>\n\nOs dados de busca podem estar inválidos."
}

func BoxNotFound() string {
	return "⚠️ <b>Caixa não encontrada.</b>\n\nVerifique o código informado e tente novamente."
}

func BoxNameNotFound() string {
	return "❗ CTO não encontrada na base de dados."
}

func BoxUnavailable() string {
	return "⚙️ O servidor está temporariamente indisponível. Tente novamente mais tarde."
}

func OnCallError() string {
	return "🤖❌ <b>Falha na consulta</b>\n\n" +
		"Houve um problema ao consultar o serviço de sobreaviso.\n\n" +
		"O sistema pode estar temporariamente indisponível. Por favor, tente novamente em alguns instantes."
}
