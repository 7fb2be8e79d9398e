// package models defines the data model for the collection organization service
package models
