package config

// Application constants
const (
	AppName   = "E-Commerce Data Analysis Dashboard"
	AppVendor = "Bangkit Academy"
	ServiceID = "ecomdash"
)
