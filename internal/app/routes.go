package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Team progress, registered before /api/team/{memberId}
	r.HandleFunc("/api/team/progress", deps.ProgressHandler.GetTeamProgress).Methods("GET")
	r.HandleFunc("/api/team/progress.csv", deps.ProgressHandler.GetTeamProgressCsv).Methods("GET")

	// Team
	r.HandleFunc("/api/team", deps.TeamHandler.ListMembers).Methods("GET")
	r.HandleFunc("/api/team", deps.TeamHandler.CreateMember).Methods("POST")
	r.HandleFunc("/api/team/{memberId}", deps.TeamHandler.GetMember).Methods("GET")

	// Schedule
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetWeek).Methods("GET")
	r.HandleFunc("/api/schedule/meeting", deps.ScheduleHandler.CreateMeeting).Methods("POST")
	r.HandleFunc("/api/schedule/member/{memberId}/events", deps.ScheduleHandler.GetMemberEvents).Methods("GET")
	r.HandleFunc("/api/schedule/member/{memberId}/calendar.ics", deps.ScheduleHandler.ExportCalendar).Methods("GET")
	r.HandleFunc("/api/schedule/member/{memberId}/import-from-google", deps.GoogleHandler.ImportFromGoogle).Methods("POST")

	// Chat
	r.HandleFunc("/api/chat/messages", deps.ChatHandler.ListMessages).Methods("GET")
	r.HandleFunc("/api/chat/messages", deps.ChatHandler.SendMessage).Methods("POST")
	r.HandleFunc("/api/chat/messages", deps.ChatHandler.ClearMessages).Methods("DELETE")
	r.HandleFunc("/api/chat/messages/{messageId}", deps.ChatHandler.DeleteMessage).Methods("DELETE")

	// Project and dashboard
	r.HandleFunc("/api/project", deps.ProjectHandler.GetInfo).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.UpdateInfo).Methods("PUT")
	r.HandleFunc("/api/tasks", deps.ProjectHandler.GetTasks).Methods("GET")
	r.HandleFunc("/api/tasks/{status}", deps.ProjectHandler.UpdateTasks).Methods("PUT")
	r.HandleFunc("/api/dashboard", deps.ProgressHandler.GetDashboard).Methods("GET")
}
