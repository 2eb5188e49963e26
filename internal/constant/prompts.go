package constant

import "fmt"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleModel     = "model"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// InsufficientContextAnswer is the exact sentence the model must emit
	// when the retrieved chunks do not cover the question.
	InsufficientContextAnswer = "No tengo información suficiente para responder esa pregunta"

	RAGSystemPrompt = `Eres un asistente útil que responde preguntas sobre hojas de vida (CVs) basándote en el contexto proporcionado.

INSTRUCCIONES:
1. Usa únicamente la información del contexto para responder
2. Si la respuesta no está en el contexto, di "No tengo información suficiente para responder esa pregunta"
3. Sé conciso pero completo en tus respuestas
4. Cita las fuentes cuando sea relevante
5. Mantén un tono profesional y amigable`
)

// RAGUserPrompt assembles the retrieved chunks and the question into the
// final user message sent to the model.
func RAGUserPrompt(context, question string) string {
	return fmt.Sprintf("%s\n\nPregunta: %s", context, question)
}

// CVDetailQuery builds the canonical query used to summarize one person's CV.
func CVDetailQuery(name string) string {
	return fmt.Sprintf(
		"Dame un resumen completo y detallado del perfil profesional de %s, incluyendo su experiencia laboral, educación, habilidades técnicas y certificaciones.",
		name,
	)
}
