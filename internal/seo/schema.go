package seo

// Choice is one selectable value with its admin label.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// SchemaHelp introduces the organization structured-data panel.
const SchemaHelp = "Structured data defines brand, contact, and storefront information to " +
	"search engines. This information applies to the whole site. " +
	"If your organization has multiple locations or branches, also provide " +
	"this info on each page representing the location."

// OrgTypeChoices lists the Schema.org Organization subtypes offered to editors.
// Labels show the type hierarchy. Some types appear under two parents.
var OrgTypeChoices = []Choice{
	{Value: "Organization", Label: "Organization"},
	{Value: "Airline", Label: "Organization > Airline"},
	{Value: "Corporation", Label: "Organization > Corporation"},
	{Value: "EducationalOrganization", Label: "Organization > EducationalOrganization"},
	{Value: "CollegeOrUniversity", Label: "Organization > EducationalOrganization > CollegeOrUniversity"},
	{Value: "ElementarySchool", Label: "Organization > EducationalOrganization > ElementarySchool"},
	{Value: "HighSchool", Label: "Organization > EducationalOrganization > HighSchool"},
	{Value: "MiddleSchool", Label: "Organization > EducationalOrganization > MiddleSchool"},
	{Value: "Preschool", Label: "Organization > EducationalOrganization > Preschool"},
	{Value: "School", Label: "Organization > EducationalOrganization > School"},
	{Value: "GovernmentOrganization", Label: "Organization > GovernmentOrganization"},
	{Value: "LocalBusiness", Label: "Organization > LocalBusiness"},
	{Value: "AnimalShelter", Label: "Organization > LocalBusiness > AnimalShelter"},
	{Value: "AutomotiveBusiness", Label: "Organization > LocalBusiness > AutomotiveBusiness"},
	{Value: "AutoBodyShop", Label: "Organization > LocalBusiness > AutomotiveBusiness > AutoBodyShop"},
	{Value: "AutoDealer", Label: "Organization > LocalBusiness > AutomotiveBusiness > AutoDealer"},
	{Value: "AutoPartsStore", Label: "Organization > LocalBusiness > AutomotiveBusiness > AutoPartsStore"},
	{Value: "AutoRental", Label: "Organization > LocalBusiness > AutomotiveBusiness > AutoRental"},
	{Value: "AutoRepair", Label: "Organization > LocalBusiness > AutomotiveBusiness > AutoRepair"},
	{Value: "AutoWash", Label: "Organization > LocalBusiness > AutomotiveBusiness > AutoWash"},
	{Value: "GasStation", Label: "Organization > LocalBusiness > AutomotiveBusiness > GasStation"},
	{Value: "MotorcycleDealer", Label: "Organization > LocalBusiness > AutomotiveBusiness > MotorcycleDealer"},
	{Value: "MotorcycleRepair", Label: "Organization > LocalBusiness > AutomotiveBusiness > MotorcycleRepair"},
	{Value: "ChildCare", Label: "Organization > LocalBusiness > ChildCare"},
	{Value: "Dentist", Label: "Organization > LocalBusiness > Dentist"},
	{Value: "DryCleaningOrLaundry", Label: "Organization > LocalBusiness > DryCleaningOrLaundry"},
	{Value: "EmergencyService", Label: "Organization > LocalBusiness > EmergencyService"},
	{Value: "FireStation", Label: "Organization > LocalBusiness > EmergencyService > FireStation"},
	{Value: "Hospital", Label: "Organization > LocalBusiness > EmergencyService > Hospital"},
	{Value: "PoliceStation", Label: "Organization > LocalBusiness > EmergencyService > PoliceStation"},
	{Value: "EmploymentAgency", Label: "Organization > LocalBusiness > EmploymentAgency"},
	{Value: "EntertainmentBusiness", Label: "Organization > LocalBusiness > EntertainmentBusiness"},
	{Value: "AdultEntertainment", Label: "Organization > LocalBusiness > EntertainmentBusiness > AdultEntertainment"},
	{Value: "AmusementPark", Label: "Organization > LocalBusiness > EntertainmentBusiness > AmusementPark"},
	{Value: "ArtGallery", Label: "Organization > LocalBusiness > EntertainmentBusiness > ArtGallery"},
	{Value: "Casino", Label: "Organization > LocalBusiness > EntertainmentBusiness > Casino"},
	{Value: "ComedyClub", Label: "Organization > LocalBusiness > EntertainmentBusiness > ComedyClub"},
	{Value: "MovieTheater", Label: "Organization > LocalBusiness > EntertainmentBusiness > MovieTheater"},
	{Value: "NightClub", Label: "Organization > LocalBusiness > EntertainmentBusiness > NightClub"},
	{Value: "FinancialService", Label: "Organization > LocalBusiness > FinancialService"},
	{Value: "AccountingService", Label: "Organization > LocalBusiness > FinancialService > AccountingService"},
	{Value: "AutomatedTeller", Label: "Organization > LocalBusiness > FinancialService > AutomatedTeller"},
	{Value: "BankOrCreditUnion", Label: "Organization > LocalBusiness > FinancialService > BankOrCreditUnion"},
	{Value: "InsuranceAgency", Label: "Organization > LocalBusiness > FinancialService > InsuranceAgency"},
	{Value: "FoodEstablishment", Label: "Organization > LocalBusiness > FoodEstablishment"},
	{Value: "Bakery", Label: "Organization > LocalBusiness > FoodEstablishment > Bakery"},
	{Value: "BarOrPub", Label: "Organization > LocalBusiness > FoodEstablishment > BarOrPub"},
	{Value: "Brewery", Label: "Organization > LocalBusiness > FoodEstablishment > Brewery"},
	{Value: "CafeOrCoffeeShop", Label: "Organization > LocalBusiness > FoodEstablishment > CafeOrCoffeeShop"},
	{Value: "FastFoodRestaurant", Label: "Organization > LocalBusiness > FoodEstablishment > FastFoodRestaurant"},
	{Value: "IceCreamShop", Label: "Organization > LocalBusiness > FoodEstablishment > IceCreamShop"},
	{Value: "Restaurant", Label: "Organization > LocalBusiness > FoodEstablishment > Restaurant"},
	{Value: "Winery", Label: "Organization > LocalBusiness > FoodEstablishment > Winery"},
	{Value: "GovernmentOffice", Label: "Organization > LocalBusiness > GovernmentOffice"},
	{Value: "PostOffice", Label: "Organization > LocalBusiness > GovernmentOffice > PostOffice"},
	{Value: "HealthAndBeautyBusiness", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness"},
	{Value: "BeautySalon", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness > BeautySalon"},
	{Value: "DaySpa", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness > DaySpa"},
	{Value: "HairSalon", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness > HairSalon"},
	{Value: "HealthClub", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness > HealthClub"},
	{Value: "NailSalon", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness > NailSalon"},
	{Value: "TattooParlor", Label: "Organization > LocalBusiness > HealthAndBeautyBusiness > TattooParlor"},
	{Value: "HomeAndConstructionBusiness", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness"},
	{Value: "Electrician", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > Electrician"},
	{Value: "GeneralContractor", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > GeneralContractor"},
	{Value: "HVACBusiness", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > HVACBusiness"},
	{Value: "HousePainter", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > HousePainter"},
	{Value: "Locksmith", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > Locksmith"},
	{Value: "MovingCompany", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > MovingCompany"},
	{Value: "Plumber", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > Plumber"},
	{Value: "RoofingContractor", Label: "Organization > LocalBusiness > HomeAndConstructionBusiness > RoofingContractor"},
	{Value: "InternetCafe", Label: "Organization > LocalBusiness > InternetCafe"},
	{Value: "LegalService", Label: "Organization > LocalBusiness > LegalService"},
	{Value: "Attorney", Label: "Organization > LocalBusiness > LegalService > Attorney"},
	{Value: "Notary", Label: "Organization > LocalBusiness > LegalService > Notary"},
	{Value: "Library", Label: "Organization > LocalBusiness > Library"},
	{Value: "LodgingBusiness", Label: "Organization > LocalBusiness > LodgingBusiness"},
	{Value: "BedAndBreakfast", Label: "Organization > LocalBusiness > LodgingBusiness > BedAndBreakfast"},
	{Value: "Campground", Label: "Organization > LocalBusiness > LodgingBusiness > Campground"},
	{Value: "Hostel", Label: "Organization > LocalBusiness > LodgingBusiness > Hostel"},
	{Value: "Hotel", Label: "Organization > LocalBusiness > LodgingBusiness > Hotel"},
	{Value: "Motel", Label: "Organization > LocalBusiness > LodgingBusiness > Motel"},
	{Value: "Resort", Label: "Organization > LocalBusiness > LodgingBusiness > Resort"},
	{Value: "ProfessionalService", Label: "Organization > LocalBusiness > ProfessionalService"},
	{Value: "RadioStation", Label: "Organization > LocalBusiness > RadioStation"},
	{Value: "RealEstateAgent", Label: "Organization > LocalBusiness > RealEstateAgent"},
	{Value: "RecyclingCenter", Label: "Organization > LocalBusiness > RecyclingCenter"},
	{Value: "SelfStorage", Label: "Organization > LocalBusiness > SelfStorage"},
	{Value: "ShoppingCenter", Label: "Organization > LocalBusiness > ShoppingCenter"},
	{Value: "SportsActivityLocation", Label: "Organization > LocalBusiness > SportsActivityLocation"},
	{Value: "BowlingAlley", Label: "Organization > LocalBusiness > SportsActivityLocation > BowlingAlley"},
	{Value: "ExerciseGym", Label: "Organization > LocalBusiness > SportsActivityLocation > ExerciseGym"},
	{Value: "GolfCourse", Label: "Organization > LocalBusiness > SportsActivityLocation > GolfCourse"},
	{Value: "HealthClub", Label: "Organization > LocalBusiness > SportsActivityLocation > HealthClub"},
	{Value: "PublicSwimmingPool", Label: "Organization > LocalBusiness > SportsActivityLocation > PublicSwimmingPool"},
	{Value: "SkiResort", Label: "Organization > LocalBusiness > SportsActivityLocation > SkiResort"},
	{Value: "SportsClub", Label: "Organization > LocalBusiness > SportsActivityLocation > SportsClub"},
	{Value: "StadiumOrArena", Label: "Organization > LocalBusiness > SportsActivityLocation > StadiumOrArena"},
	{Value: "TennisComplex", Label: "Organization > LocalBusiness > SportsActivityLocation > TennisComplex"},
	{Value: "Store", Label: "Organization > LocalBusiness > Store"},
	{Value: "AutoPartsStore", Label: "Organization > LocalBusiness > Store > AutoPartsStore"},
	{Value: "BikeStore", Label: "Organization > LocalBusiness > Store > BikeStore"},
	{Value: "BookStore", Label: "Organization > LocalBusiness > Store > BookStore"},
	{Value: "ClothingStore", Label: "Organization > LocalBusiness > Store > ClothingStore"},
	{Value: "ComputerStore", Label: "Organization > LocalBusiness > Store > ComputerStore"},
	{Value: "ConvenienceStore", Label: "Organization > LocalBusiness > Store > ConvenienceStore"},
	{Value: "DepartmentStore", Label: "Organization > LocalBusiness > Store > DepartmentStore"},
	{Value: "ElectronicsStore", Label: "Organization > LocalBusiness > Store > ElectronicsStore"},
	{Value: "Florist", Label: "Organization > LocalBusiness > Store > Florist"},
	{Value: "FurnitureStore", Label: "Organization > LocalBusiness > Store > FurnitureStore"},
	{Value: "GardenStore", Label: "Organization > LocalBusiness > Store > GardenStore"},
	{Value: "GroceryStore", Label: "Organization > LocalBusiness > Store > GroceryStore"},
	{Value: "HardwareStore", Label: "Organization > LocalBusiness > Store > HardwareStore"},
	{Value: "HobbyShop", Label: "Organization > LocalBusiness > Store > HobbyShop"},
	{Value: "HomeGoodsStore", Label: "Organization > LocalBusiness > Store > HomeGoodsStore"},
	{Value: "JewelryStore", Label: "Organization > LocalBusiness > Store > JewelryStore"},
	{Value: "LiquorStore", Label: "Organization > LocalBusiness > Store > LiquorStore"},
	{Value: "MensClothingStore", Label: "Organization > LocalBusiness > Store > MensClothingStore"},
	{Value: "MobilePhoneStore", Label: "Organization > LocalBusiness > Store > MobilePhoneStore"},
	{Value: "MovieRentalStore", Label: "Organization > LocalBusiness > Store > MovieRentalStore"},
	{Value: "MusicStore", Label: "Organization > LocalBusiness > Store > MusicStore"},
	{Value: "OfficeEquipmentStore", Label: "Organization > LocalBusiness > Store > OfficeEquipmentStore"},
	{Value: "OutletStore", Label: "Organization > LocalBusiness > Store > OutletStore"},
	{Value: "PawnShop", Label: "Organization > LocalBusiness > Store > PawnShop"},
	{Value: "PetStore", Label: "Organization > LocalBusiness > Store > PetStore"},
	{Value: "ShoeStore", Label: "Organization > LocalBusiness > Store > ShoeStore"},
	{Value: "SportingGoodsStore", Label: "Organization > LocalBusiness > Store > SportingGoodsStore"},
	{Value: "TireShop", Label: "Organization > LocalBusiness > Store > TireShop"},
	{Value: "ToyStore", Label: "Organization > LocalBusiness > Store > ToyStore"},
	{Value: "WholesaleStore", Label: "Organization > LocalBusiness > Store > WholesaleStore"},
	{Value: "TelevisionStation", Label: "Organization > LocalBusiness > TelevisionStation"},
	{Value: "TouristInformationCenter", Label: "Organization > LocalBusiness > TouristInformationCenter"},
	{Value: "TravelAgency", Label: "Organization > LocalBusiness > TravelAgency"},
	{Value: "MedicalOrganization", Label: "Organization > MedicalOrganization"},
	{Value: "Dentist", Label: "Organization > MedicalOrganization > Dentist"},
	{Value: "Hospital", Label: "Organization > MedicalOrganization > Hospital"},
	{Value: "Pharmacy", Label: "Organization > MedicalOrganization > Pharmacy"},
	{Value: "Physician", Label: "Organization > MedicalOrganization > Physician"},
	{Value: "NGO", Label: "Organization > NGO"},
	{Value: "PerformingGroup", Label: "Organization > PerformingGroup"},
	{Value: "DanceGroup", Label: "Organization > PerformingGroup > DanceGroup"},
	{Value: "MusicGroup", Label: "Organization > PerformingGroup > MusicGroup"},
	{Value: "TheaterGroup", Label: "Organization > PerformingGroup > TheaterGroup"},
	{Value: "SportsOrganization", Label: "Organization > SportsOrganization"},
	{Value: "SportsTeam", Label: "Organization > SportsOrganization > SportsTeam"},
}

var ActionTypeChoices = []Choice{
	{Value: "OrderAction", Label: "OrderAction"},
	{Value: "ReserveAction", Label: "ReserveAction"},
}

var ResultTypeChoices = []Choice{
	{Value: "Reservation", Label: "Reservation"},
	{Value: "BusReservation", Label: "BusReservation"},
	{Value: "EventReservation", Label: "EventReservation"},
	{Value: "FlightReservation", Label: "FlightReservation"},
	{Value: "FoodEstablishmentReservation", Label: "FoodEstablishmentReservation"},
	{Value: "LodgingReservation", Label: "LodgingReservation"},
	{Value: "RentalCarReservation", Label: "RentalCarReservation"},
	{Value: "ReservationPackage", Label: "ReservationPackage"},
	{Value: "TaxiReservation", Label: "TaxiReservation"},
	{Value: "TrainReservation", Label: "TrainReservation"},
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// IsOrgType reports whether value is an offered organization type.
func IsOrgType(value string) bool { return hasChoice(OrgTypeChoices, value) }

// IsActionType reports whether value is an offered action type.
func IsActionType(value string) bool { return hasChoice(ActionTypeChoices, value) }

// IsResultType reports whether value is an offered action result type.
func IsResultType(value string) bool { return hasChoice(ResultTypeChoices, value) }
