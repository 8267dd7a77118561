package service

import (
	"fmt"
	"strings"

	"homely_backend/internal/assistant/transport"
	listingsdomain "homely_backend/internal/listings/domain"
)

const chatInstruction = "You are a friendly and helpful real estate assistant specializing in the Indian market. Keep your answers concise and conversational."

func marketNewsPrompt(question string) string {
	return fmt.Sprintf(`As a real estate expert, answer the following question about the Indian real estate market based on the latest information from the web: "%s"`, question)
}

func localInfoPrompt(question string, at transport.Coordinates) string {
	return fmt.Sprintf(`As a local real estate expert, answer the following question about localities in India for a user located near latitude %s and longitude %s: "%s"`,
		formatCoord(at.Latitude), formatCoord(at.Longitude), question)
}

func smartSearchPrompt(query string, at *transport.Coordinates) string {
	locationContext := ""
	if at != nil {
		locationContext = fmt.Sprintf("The user is currently near latitude %s and longitude %s.",
			formatCoord(at.Latitude), formatCoord(at.Longitude))
	}
	return fmt.Sprintf(`As a real estate expert for India, provide a concise and insightful summary for a user searching for properties in "%s". Include information about the area's lifestyle, key amenities, property market trends, and pros/cons. Use web and map data for the most current information. %s`,
		query, locationContext)
}

func descriptionPrompt(l listingsdomain.Listing) string {
	verified := "No"
	if l.Verified {
		verified = "Yes"
	}

	var b strings.Builder
	b.WriteString("Generate an engaging and professional real estate listing description for the following property in India. ")
	b.WriteString("Highlight its key features and appeal to potential buyers or renters.\n\n")
	fmt.Fprintf(&b, "- Property Title: %s\n", l.Title)
	fmt.Fprintf(&b, "- For: %s\n", l.Kind)
	fmt.Fprintf(&b, "- Price: %s\n", l.Price)
	fmt.Fprintf(&b, "- Location: %s\n", l.Location)
	fmt.Fprintf(&b, "- Bedrooms: %d\n", l.Beds)
	fmt.Fprintf(&b, "- Bathrooms: %d\n", l.Baths)
	fmt.Fprintf(&b, "- Area: %d sqft\n", l.Sqft)
	fmt.Fprintf(&b, "- Status: %s\n", l.Status)
	fmt.Fprintf(&b, "- Agent: %s\n", l.Agent.Name)
	fmt.Fprintf(&b, "- Verified: %s\n\n", verified)
	b.WriteString("Write a description that is both informative and enticing.")
	return b.String()
}

// formatCoord prints coordinates the way a browser would, without trailing zeros.
func formatCoord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
