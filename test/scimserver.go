// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scimtools/scim-checker/pkg/scim"
)

// SCIMServer is a minimal, well-behaved in-memory SCIM 2.0 provider used
// as an end-to-end fixture. It serves the three discovery endpoints plus
// full CRUD for the User resource type, and answers every unknown URL with
// a proper 404 Error object.
type SCIMServer struct {
	*httptest.Server

	mu    sync.Mutex
	users map[string]map[string]any
}

func NewSCIMServer() *SCIMServer {
	s := &SCIMServer{
		users: make(map[string]map[string]any),
	}

	r := chi.NewRouter()
	r.Get("/ServiceProviderConfig", s.serviceProviderConfig)
	r.Get("/Schemas", s.listSchemas)
	r.Get("/ResourceTypes", s.listResourceTypes)
	r.Route("/Users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Get("/{id}", s.getUser)
		r.Put("/{id}", s.replaceUser)
		r.Patch("/{id}", s.patchUser)
		r.Delete("/{id}", s.deleteUser)
	})
	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)

	s.Server = httptest.NewServer(r)
	return s
}

// UserCount reports how many users the fixture currently stores.
func (s *SCIMServer) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *SCIMServer) serviceProviderConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &scim.ServiceProviderConfig{
		Schemas: []string{scim.CoreURNServiceProviderConfig},
		Patch:   scim.Supported{Supported: true},
		Bulk:    scim.BulkSupport{Supported: false},
		Filter:  scim.FilterSupport{Supported: true, MaxResults: 200},
		Sort:    scim.Supported{Supported: false},
		ETag:    scim.Supported{Supported: false},
		AuthenticationSchemes: []scim.AuthenticationScheme{
			{Type: "oauthbearertoken", Name: "OAuth Bearer Token"},
		},
	})
}

// UserSchema is the schema the fixture advertises for its User resource.
func UserSchema() scim.Schema {
	return scim.Schema{
		Schemas:     []string{scim.CoreURNSchema},
		ID:          scim.CoreURNUser,
		Name:        "User",
		Description: "User Account",
		Attributes: []scim.Attribute{
			{Name: "userName", Type: "string", Required: true, Uniqueness: "server"},
			{Name: "displayName", Type: "string"},
			{Name: "active", Type: "boolean"},
		},
	}
}

func (s *SCIMServer) listSchemas(w http.ResponseWriter, _ *http.Request) {
	writeList(w, UserSchema())
}

func (s *SCIMServer) listResourceTypes(w http.ResponseWriter, _ *http.Request) {
	writeList(w, scim.ResourceType{
		Schemas:  []string{scim.CoreURNResourceType},
		ID:       "User",
		Name:     "User",
		Endpoint: "/Users",
		Schema:   scim.CoreURNUser,
	})
}

func (s *SCIMServer) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resources := make([]any, 0, len(s.users))
	for _, u := range s.users {
		resources = append(resources, u)
	}
	writeList(w, resources...)
}

func (s *SCIMServer) createUser(w http.ResponseWriter, r *http.Request) {
	var user map[string]any
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if name, _ := user["userName"].(string); name == "" {
		s.writeError(w, http.StatusBadRequest, "userName is required")
		return
	}

	id := uuid.NewString()
	user["id"] = id
	user["meta"] = map[string]any{"resourceType": "User", "location": "/Users/" + id}

	s.mu.Lock()
	s.users[id] = user
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, user)
}

func (s *SCIMServer) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.users[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *SCIMServer) replaceUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.users[id]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	var user map[string]any
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user["id"] = id
	user["meta"] = map[string]any{"resourceType": "User", "location": "/Users/" + id}

	s.mu.Lock()
	s.users[id] = user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, user)
}

func (s *SCIMServer) patchUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch scim.PatchOp
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	user, ok := s.users[id]
	if ok {
		for _, op := range patch.Operations {
			if op.Op == "replace" && op.Path != "" {
				user[op.Path] = op.Value
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *SCIMServer) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.users[id]
	delete(s.users, id)
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *SCIMServer) notFound(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusNotFound, "Resource not found")
}

func (s *SCIMServer) writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{
		"schemas": []string{scim.MessageURNError},
		"status":  strconv.Itoa(status),
		"detail":  detail,
	})
}

func writeList(w http.ResponseWriter, resources ...any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"schemas":      []string{scim.MessageURNListResponse},
		"totalResults": len(resources),
		"startIndex":   1,
		"itemsPerPage": len(resources),
		"Resources":    resources,
	})
}

func writeJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("Content-Type", scim.ContentTypeSCIM)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(obj)
}
