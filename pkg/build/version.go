// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package build

import "fmt"

var (
	AppName     = "scim-checker"
	AuthorName  = "the scim-checker authors"
	AuthorEmail = "scim-checker@scimtools.dev"
	Copyright   = "© 2024 the scim-checker authors"
)

func GetVersion() string {
	return fmt.Sprintf("%s.%s.%s-%s", AppName, Rev, Tag, Time)
}
