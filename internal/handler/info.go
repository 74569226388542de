package handler

import "net/http"

// Static informational content served on the public portal pages.

type aboutResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives"`
	Contact     string   `json:"contact"`
}

type officerResponse struct {
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

type byeLawResponse struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	URL   string `json:"url"`
}

// About returns the authority's profile
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, aboutResponse{
		Name: "Industrial Development Authority",
		Description: "The authority plans and develops industrial estates in the " +
			"region, allots commercial and residential units, and manages the " +
			"installment and service-charge collections of allotted properties.",
		Objectives: []string{
			"Planned development of industrial areas and supporting infrastructure",
			"Allotment of units to entrepreneurs and residents",
			"Collection of allotment dues, installments and annual service charges",
			"Maintenance of common facilities in authority estates",
		},
		Contact: "office@uida.example.in",
	})
}

// OrganizationChart returns the office hierarchy
func (h *Handler) OrganizationChart(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string][]officerResponse{
		"officers": {
			{Designation: "Chairperson", Department: "Authority Board"},
			{Designation: "Chief Executive Officer", Department: "Administration"},
			{Designation: "Secretary", Department: "Administration"},
			{Designation: "Finance Officer", Department: "Accounts"},
			{Designation: "Executive Engineer", Department: "Works"},
			{Designation: "Assistant Engineer", Department: "Works"},
			{Designation: "Property Officer", Department: "Allotment"},
		},
	})
}

// ByeLaws returns the bye-laws and acts in force
func (h *Handler) ByeLaws(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string][]byeLawResponse{
		"documents": {
			{Title: "Industrial Area Development Act", Year: 1976, URL: "/static/acts/industrial-area-development-act.pdf"},
			{Title: "Building Construction Bye-Laws", Year: 2008, URL: "/static/byelaws/building-construction.pdf"},
			{Title: "Property Transfer Rules", Year: 2014, URL: "/static/byelaws/property-transfer-rules.pdf"},
			{Title: "Service Charge Regulations", Year: 2019, URL: "/static/byelaws/service-charge-regulations.pdf"},
		},
	})
}
