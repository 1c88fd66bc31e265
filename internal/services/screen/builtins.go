package screen

import (
	"adminconsole/internal/core/listresource"
)

// Builtins returns the screens every console ships with.
func Builtins() []Definition {
	return []Definition{
		{
			Name:                  "users",
			Title:                 "Users",
			Path:                  "/users",
			Messages:              messages("User"),
			Modals:                []listresource.CustomModal{{Name: "resetPassword", RequiresSubject: true}},
			FetchDetailBeforeEdit: true,
		},
		{
			Name:     "roles",
			Title:    "Roles",
			Path:     "/roles",
			Messages: messages("Role"),
			Modals:   []listresource.CustomModal{{Name: "assignPermissions", RequiresSubject: true}},
		},
		{Name: "groups", Title: "Groups", Path: "/groups", Messages: messages("Group")},
		{Name: "banners", Title: "Banners", Path: "/banners", Messages: messages("Banner")},
		{Name: "partners", Title: "Partners", Path: "/partners", Messages: messages("Partner")},
		{Name: "faqs", Title: "FAQs", Path: "/faqs", Limit: 20, Messages: messages("FAQ")},
		{Name: "categories", Title: "Categories", Path: "/categories", Messages: messages("Category")},
		{Name: "shipping-methods", Title: "Shipping methods", Path: "/shipping-methods", Messages: messages("Shipping method")},
		{
			Name:                  "comics",
			Title:                 "Comics",
			Path:                  "/comics",
			Messages:              messages("Comic"),
			Modals:                []listresource.CustomModal{{Name: "manageChapters", RequiresSubject: true}},
			FetchDetailBeforeEdit: true,
		},
		{
			Name:     "chapters",
			Title:    "Chapters",
			Path:     "/chapters",
			Limit:    25,
			Messages: messages("Chapter"),
		},
	}
}

func messages(noun string) listresource.Messages {
	return listresource.Messages{
		CreateSuccess: noun + " created successfully",
		UpdateSuccess: noun + " updated successfully",
		DeleteSuccess: noun + " deleted successfully",
	}
}
