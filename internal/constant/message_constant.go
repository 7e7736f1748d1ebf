package constant

// Outbound message templates. Formatting uses WhatsApp markup (*bold*);
// outbound text is normalized by pkg/whatsapp before sending.
const (
	MsgWelcomeFmt = "Hi %s! 👋 I'm your PDF assistant.\n\n" +
		"Send me a PDF document and I'll answer questions about its content.\n" +
		"Type */help* to see everything I can do."

	MsgHelp = "*Available commands:*\n" +
		"/help - show this message\n" +
		"/list - list your uploaded documents\n" +
		"/select N - switch to document number N\n" +
		"/latest - switch to your newest document\n" +
		"/delete N - delete document number N\n" +
		"/delete_all - delete all your documents\n" +
		"/feedback - share feedback with us\n" +
		"/report - report a problem\n\n" +
		"Or just send a PDF and start asking questions!"

	MsgUploadPrompt = "You don't have an active document yet. " +
		"Send me a PDF and I'll answer questions about it. 📄"

	MsgNoDocuments = "You haven't uploaded any documents yet. Send me a PDF to get started!"

	MsgUnsupportedType = "Sorry, I can only work with PDF documents. " +
		"Please send your file as a PDF. 📄"

	MsgNotPDF = "That doesn't look like a PDF. Please send a PDF document."

	MsgFileTooLargeFmt = "That file is too large (limit is %d MB). Please send a smaller PDF."

	MsgDownloadFailed = "I couldn't download your file from WhatsApp. Please try sending it again."

	MsgProcessingStartedFmt = "Received your PDF: *%s*. Processing... ⏳"

	MsgProcessingCompleteFmt = "Your document *%s* is ready! 🎉\n\n" +
		"Ask me anything about it, for example:\n" +
		"- \"What is this document about?\"\n" +
		"- \"Summarize the main points\"\n\n" +
		"Type */list* to see all your documents."

	MsgProcessingFailedFmt = "I couldn't read any text from *%s*. 😕\n" +
		"It may be scanned or image-based. It stays in your */list*, " +
		"but I won't be able to answer questions about it."

	MsgSelectedFmt = "Now answering questions about *%s*. 📖"

	MsgInvalidSelectionFmt = "I couldn't find document number %d. Type */list* to see your documents."

	MsgDeletedFmt = "Deleted *%s*. 🗑️"

	MsgDeletedAll = "All your documents have been deleted. 🗑️"

	MsgUnknownCommand = "I don't recognize that command. Type */help* to see what I can do."

	MsgReportPrompt = "Please describe the problem you ran into. " +
		"Your next message will be sent to our team. 🛠️"

	MsgReportThanks = "Thank you! Your report has been filed and our team will look into it. 🙏"

	MsgFeedbackPrompt = "We'd love to hear your thoughts! " +
		"Your next message will be saved as feedback. 💬"

	MsgFeedbackThanks = "Thank you for your feedback! 🙏"

	MsgThanksReply = "You're welcome! Happy to help. 😊"

	MsgCapabilities = "I answer questions about PDF documents you send me. " +
		"Upload a PDF, wait for processing to finish, then ask away. " +
		"Type */help* for the full command list."

	MsgUploadIntent = "Sure! Just send the PDF as a document attachment and I'll take it from there. 📄"

	MsgAnswerUnavailable = "Sorry, I ran into a problem answering that. Please try again in a moment. 🙏"

	MsgEmptyDocument = "I couldn't extract any text from this document, so I can't answer questions about it. " +
		"Try selecting another document with */list* and */select*."
)
