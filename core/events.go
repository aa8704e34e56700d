package core

import "fmt"

// EventSpec wires the Events collection: campus events with an RSVP toggle
// paired to the attendee count.
func EventSpec() EntitySpec[Event] {
	return EntitySpec[Event]{
		Key:  KeyEvents,
		Seed: seedEvents,
		ID:   func(e Event) string { return e.ID },
		AssignID: func(e Event, id string) Event {
			e.ID = id
			return e
		},
		Validate: func(e Event) error {
			return requireFields(
				"title", e.Title,
				"description", e.Description,
				"date", e.Date,
				"time", e.Time,
				"location", e.Location,
			)
		},
		SearchText: func(e Event) []string {
			return []string{e.Title, e.Description}
		},
		Match: func(e Event, category string) bool {
			return category == FilterAll || string(e.Category) == category
		},
		Toggle: func(e Event) Event {
			if e.IsRSVP {
				e.IsRSVP = false
				if e.Attendees > 0 {
					e.Attendees--
				}
			} else {
				e.IsRSVP = true
				e.Attendees++
			}
			return e
		},
		Created: func(e Event) Notification {
			return success("Event created", fmt.Sprintf("%q has been added to the campus events.", e.Title))
		},
		Toggled: func(e Event) Notification {
			if e.IsRSVP {
				return success("RSVP confirmed", fmt.Sprintf("You're registered for %s.", e.Title))
			}
			return success("RSVP cancelled", "You've cancelled your RSVP.")
		},
	}
}

func seedEvents() []Event {
	return []Event{
		{
			ID:           "1",
			Title:        "AI in Education Workshop",
			Description:  "Learn about the latest AI tools transforming education",
			Date:         "2025-07-15",
			Time:         "14:00",
			Location:     "Tech Hub, Room 101",
			Category:     CategoryWorkshop,
			Attendees:    45,
			MaxAttendees: 60,
			Image:        "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?w=400",
		},
		{
			ID:           "2",
			Title:        "Career Fair 2025",
			Description:  "Meet top employers and explore career opportunities",
			Date:         "2025-07-20",
			Time:         "10:00",
			Location:     "Main Auditorium",
			Category:     CategoryCareer,
			Attendees:    120,
			MaxAttendees: 200,
			IsRSVP:       true,
			Image:        "https://images.unsplash.com/photo-1559136555-9303baea8ebd?w=400",
		},
		{
			ID:           "3",
			Title:        "Hackathon 2025",
			Description:  "48-hour coding challenge with amazing prizes",
			Date:         "2025-07-25",
			Time:         "09:00",
			Location:     "Innovation Center",
			Category:     CategoryCompetition,
			Attendees:    80,
			MaxAttendees: 100,
			Image:        "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?w=400",
		},
		{
			ID:           "4",
			Title:        "Research Symposium",
			Description:  "Present and discuss latest research findings",
			Date:         "2025-08-01",
			Time:         "13:00",
			Location:     "Research Building",
			Category:     CategoryAcademic,
			Attendees:    35,
			MaxAttendees: 50,
			Image:        "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400",
		},
	}
}
