package email

const (
	subjectLeadAlertFmt      = "New %s from %s"
	subjectVisitConfirmation = "Your visit request has been received"
	subjectVisitReminderFmt  = "Reminder: your visit to %s tomorrow"
	subjectAlertWelcome      = "Welcome to HomelyAI property alerts"
)

var leadKindLabels = map[string]string{
	"enquiry":      "enquiry",
	"visit":        "visit request",
	"alert_signup": "alert sign-up",
}

func leadKindLabel(kind string) string {
	if label, ok := leadKindLabels[kind]; ok {
		return label
	}
	return "lead"
}
