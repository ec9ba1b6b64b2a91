// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package scim

import (
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
)

// Decode interprets a response body as one of the protocol objects,
// discriminating on the schemas URN list. Bodies that do not carry a
// recognized URN come back as *UnexpectedContentError.
func Decode(body []byte) (Object, error) {
	var probe struct {
		Schemas []string `json:"schemas"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &UnexpectedContentError{Body: body, Err: err}
	}

	switch {
	case slices.Contains(probe.Schemas, MessageURNError):
		return decodeAs[Error](body)
	case slices.Contains(probe.Schemas, MessageURNListResponse):
		return decodeAs[ListResponse](body)
	case slices.Contains(probe.Schemas, CoreURNServiceProviderConfig):
		return decodeAs[ServiceProviderConfig](body)
	case slices.Contains(probe.Schemas, CoreURNSchema):
		return decodeAs[Schema](body)
	case slices.Contains(probe.Schemas, CoreURNResourceType):
		return decodeAs[ResourceType](body)
	case len(probe.Schemas) > 0:
		// Any other URN marks a server-defined resource (User, Group, ...).
		return decodeAs[Resource](body)
	}
	return nil, &UnexpectedContentError{Body: body, Err: errors.New("no schemas URN present")}
}

func decodeAs[T any, PT interface {
	*T
	Object
}](body []byte) (Object, error) {
	obj := PT(new(T))
	if err := json.Unmarshal(body, obj); err != nil {
		return nil, &UnexpectedContentError{Body: body, Err: err}
	}
	return obj, nil
}
