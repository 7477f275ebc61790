package mailer

import (
	"fmt"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// Customer-facing copy is in French; the salon operates in Dakar and Rome
// and its clientele books in French.

// BookingConfirmation builds the confirmation sent to the customer. Times are
// formatted in the salon's local timezone.
func BookingConfirmation(b *domain.Booking, loc *time.Location) (subject, body string) {
	start := b.StartTime.In(loc)

	subject = "Confirmation de votre réservation"
	body = fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Votre réservation est confirmée.\n\n"+
			"Prestation : %s\n"+
			"Date : %s\n"+
			"Heure : %s\n"+
			"Prix : %.0f FCFA\n\n"+
			"À très bientôt,\nL'équipe du salon",
		b.CustomerFirstName,
		b.ServiceName,
		start.Format("02/01/2006"),
		start.Format("15:04"),
		b.ServicePrice,
	)
	return subject, body
}

// AdminBookingNotification builds the internal notice sent when a booking is
// created.
func AdminBookingNotification(b *domain.Booking, loc *time.Location) (subject, body string) {
	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	subject = fmt.Sprintf("Nouvelle réservation : %s le %s", b.ServiceName, start.Format("02/01/2006"))
	body = fmt.Sprintf(
		"Nouvelle réservation #%d\n\n"+
			"Client : %s %s\n"+
			"Email : %s\n"+
			"Téléphone : %s\n"+
			"Prestation : %s\n"+
			"Créneau : %s - %s\n"+
			"Paiement : %s\n",
		b.ID,
		b.CustomerFirstName, b.CustomerLastName,
		b.CustomerEmail,
		b.CustomerPhone,
		b.ServiceName,
		start.Format("02/01/2006 15:04"), end.Format("15:04"),
		b.PaymentMethod,
	)
	if b.Notes != nil && *b.Notes != "" {
		body += fmt.Sprintf("Notes : %s\n", *b.Notes)
	}
	return subject, body
}

// BookingCancellation builds the notice sent to the customer when a booking
// is cancelled.
func BookingCancellation(b *domain.Booking, loc *time.Location) (subject, body string) {
	start := b.StartTime.In(loc)

	subject = "Annulation de votre réservation"
	body = fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Votre réservation du %s à %s (%s) a bien été annulée.\n\n"+
			"L'équipe du salon",
		b.CustomerFirstName,
		start.Format("02/01/2006"),
		start.Format("15:04"),
		b.ServiceName,
	)
	return subject, body
}

// VerificationEmail builds the account verification message.
func VerificationEmail(firstName, verifyURL string) (subject, body string) {
	subject = "Vérifiez votre adresse email"
	body = fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Merci de votre inscription. Cliquez sur le lien ci-dessous pour vérifier votre adresse email :\n\n"+
			"%s\n\n"+
			"Si vous n'êtes pas à l'origine de cette inscription, ignorez ce message.\n\n"+
			"L'équipe du salon",
		firstName,
		verifyURL,
	)
	return subject, body
}

// PasswordResetEmail builds the password reset message.
func PasswordResetEmail(firstName, resetURL string, validFor time.Duration) (subject, body string) {
	subject = "Réinitialisation de votre mot de passe"
	body = fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Vous avez demandé la réinitialisation de votre mot de passe. "+
			"Cliquez sur le lien ci-dessous (valable %d minutes) :\n\n"+
			"%s\n\n"+
			"Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.\n\n"+
			"L'équipe du salon",
		firstName,
		int(validFor.Minutes()),
		resetURL,
	)
	return subject, body
}

// ContactNotification builds the internal notice for a contact-form message.
func ContactNotification(name, email, topic, message string) (subject, body string) {
	subject = fmt.Sprintf("Message du site : %s", topic)
	body = fmt.Sprintf(
		"Nouveau message via le formulaire de contact\n\n"+
			"Nom : %s\n"+
			"Email : %s\n"+
			"Sujet : %s\n\n"+
			"%s\n",
		name, email, topic, message,
	)
	return subject, body
}
