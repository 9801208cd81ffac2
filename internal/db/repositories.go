package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Rooms     *RoomRepository
	Customers *CustomerRepository
	Holidays  *HolidayRepository
	Events    *EventRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Rooms:     NewRoomRepository(database),
		Customers: NewCustomerRepository(database),
		Holidays:  NewHolidayRepository(database),
		Events:    NewEventRepository(database),
	}
}
